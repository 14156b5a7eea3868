// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aitest provides a scripted ai.Collaborator for tests.
package aitest

import (
	"context"
	"sync"

	"github.com/pdiddy/research-hub/internal/ai"
)

// Reply is one scripted collaborator outcome.
type Reply struct {
	Text string
	Err  error

	// Block, when non-nil, holds the call until the channel is closed or
	// the request context ends.
	Block <-chan struct{}
}

// Fake is a Collaborator that returns scripted replies in order and records
// every request. When the script runs out it returns Default.
type Fake struct {
	mu       sync.Mutex
	script   []Reply
	requests []ai.Request

	// Default is returned once the script is exhausted.
	Default Reply
}

// New returns a Fake that plays replies in order.
func New(replies ...Reply) *Fake {
	return &Fake{script: replies}
}

// Text is shorthand for a successful reply.
func Text(s string) Reply { return Reply{Text: s} }

// Fail is shorthand for a failed reply.
func Fail(err error) Reply { return Reply{Err: err} }

// Push appends replies to the script.
func (f *Fake) Push(replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, replies...)
}

// Generate records req and plays the next scripted reply.
func (f *Fake) Generate(ctx context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	reply := f.Default
	if len(f.script) > 0 {
		reply = f.script[0]
		f.script = f.script[1:]
	}
	f.mu.Unlock()

	if reply.Block != nil {
		select {
		case <-reply.Block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return reply.Text, reply.Err
}

// Requests returns a copy of every request received so far.
func (f *Fake) Requests() []ai.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ai.Request(nil), f.requests...)
}

// Calls returns the number of requests received so far.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var _ ai.Collaborator = (*Fake)(nil)

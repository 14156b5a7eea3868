// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"context"
	"sync"
	"time"
)

// Slot names one independent AI-backed operation channel.
type Slot string

const (
	SlotSearch    Slot = "search"
	SlotIngest    Slot = "ingest"
	SlotLab       Slot = "lab"
	SlotBrainy    Slot = "brainy"
	SlotWorkspace Slot = "workspace"
)

// policy decides what happens when a call arrives while another is in flight.
type policy int

const (
	// supersede cancels the in-flight call; only the newest ticket commits.
	supersede policy = iota

	// serialize queues the call behind the in-flight one.
	serialize
)

// slot tracks the calls of one Slot. Every call takes a ticket; tickets only
// grow, so a completion can tell whether a newer call has started since.
type slot struct {
	name    Slot
	policy  policy
	timeout time.Duration

	// turn is held by the running call of a serialize slot.
	turn chan struct{}

	mu       sync.Mutex
	ticket   uint64
	inflight int
	cancel   context.CancelFunc
}

func newSlot(name Slot, p policy, timeout time.Duration) *slot {
	return &slot{
		name:    name,
		policy:  p,
		timeout: timeout,
		turn:    make(chan struct{}, 1),
	}
}

// call is one admitted request on a slot.
type call struct {
	ctx    context.Context
	ticket uint64
	done   func()
}

// begin admits a request. For a supersede slot the previous call's context
// is canceled. For a serialize slot begin blocks until earlier calls finish;
// it fails only when ctx ends while waiting. The returned context carries
// the slot deadline. done must be called exactly once.
func (s *slot) begin(ctx context.Context) (call, error) {
	s.mu.Lock()
	s.inflight++
	s.ticket++
	ticket := s.ticket
	if s.policy == supersede && s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	if s.policy == serialize {
		select {
		case s.turn <- struct{}{}:
		case <-ctx.Done():
			s.mu.Lock()
			s.inflight--
			s.mu.Unlock()
			return call{}, ctx.Err()
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	if s.policy == supersede {
		s.mu.Lock()
		if s.ticket == ticket {
			s.cancel = cancel
		} else {
			// A newer call arrived between admission and here.
			cancel()
		}
		s.mu.Unlock()
	}

	done := func() {
		cancel()
		if s.policy == serialize {
			<-s.turn
		}
		s.mu.Lock()
		s.inflight--
		if s.ticket == ticket {
			s.cancel = nil
		}
		s.mu.Unlock()
	}
	return call{ctx: callCtx, ticket: ticket, done: done}, nil
}

// commit runs fn only if ticket is still the newest. It reports whether fn
// ran. Holding the slot lock keeps a newer call from starting in between.
func (s *slot) commit(ticket uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticket != ticket {
		return false
	}
	fn()
	return true
}

// busy reports whether any call is admitted or waiting.
func (s *slot) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

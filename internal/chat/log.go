// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat holds the two conversation logs and builds the prompts that
// carry them to the collaborator.
package chat

import (
	"strconv"
	"sync"
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

// TimestampFormat is the display format stamped on each message.
const TimestampFormat = "15:04:05"

// Log is an ordered, in-memory message list with a typing indicator. It is
// safe for concurrent use. Logs are never persisted.
type Log struct {
	mu       sync.RWMutex
	now      func() time.Time
	lastID   int64
	messages []types.ChatMessage
	typing   bool
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append adds a message and returns it. IDs derive from the clock in
// nanoseconds and are bumped forward when two messages share an instant.
func (l *Log) Append(role types.Role, content string) types.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now()
	id := t.UnixNano()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id

	msg := types.ChatMessage{
		ID:        strconv.FormatInt(id, 10),
		Role:      role,
		Content:   content,
		Timestamp: t.Format(TimestampFormat),
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of the log in order.
func (l *Log) Messages() []types.ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]types.ChatMessage(nil), l.messages...)
}

// History returns the log as prompt turns.
func (l *Log) History() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := make([]Turn, len(l.messages))
	for i, m := range l.messages {
		turns[i] = Turn{Role: m.Role, Content: m.Content}
	}
	return turns
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// SetTyping sets the typing indicator.
func (l *Log) SetTyping(typing bool) {
	l.mu.Lock()
	l.typing = typing
	l.mu.Unlock()
}

// Typing reports whether a reply is being generated.
func (l *Log) Typing() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.typing
}

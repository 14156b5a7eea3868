// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-hub/pkg/types"
)

func TestAppendOrderAndTimestamp(t *testing.T) {
	l := NewLog()
	at := time.Date(2026, 5, 1, 14, 3, 9, 0, time.Local)
	l.now = func() time.Time { return at }

	u := l.Append(types.RoleUser, "What is attention?")
	a := l.Append(types.RoleAssistant, "A weighting over inputs.")

	assert.Equal(t, "14:03:09", u.Timestamp)
	assert.NotEqual(t, u.ID, a.ID, "same instant still yields distinct IDs")

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
	assert.Equal(t, types.RoleAssistant, msgs[1].Role)
	assert.Equal(t, 2, l.Len())
}

func TestAppendConcurrentIDsUnique(t *testing.T) {
	l := NewLog()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(types.RoleUser, "hi")
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, m := range l.Messages() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestHistory(t *testing.T) {
	l := NewLog()
	l.Append(types.RoleUser, "q")
	l.Append(types.RoleAssistant, "a")

	assert.Equal(t, []Turn{
		{Role: types.RoleUser, Content: "q"},
		{Role: types.RoleAssistant, Content: "a"},
	}, l.History())
}

func TestTyping(t *testing.T) {
	l := NewLog()
	assert.False(t, l.Typing())
	l.SetTyping(true)
	assert.True(t, l.Typing())
	l.SetTyping(false)
	assert.False(t, l.Typing())
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(types.RoleUser, "original")

	msgs := l.Messages()
	msgs[0].Content = "changed"
	assert.Equal(t, "original", l.Messages()[0].Content)
}

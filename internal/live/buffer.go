// Package live buffers messages observed in real time and periodically
// merges them into the persisted per-channel export documents.
package live

import (
	"sync"

	"github.com/MikeSquared-Agency/mirror/internal/model"
)

// Buffer accumulates transformed messages per channel between merge
// cycles. Ingest never blocks on export or merge work.
type Buffer struct {
	mu      sync.Mutex
	pending map[string][]model.Message
}

func NewBuffer() *Buffer {
	return &Buffer{pending: make(map[string][]model.Message)}
}

// Ingest appends a message to its channel's buffer in arrival order.
func (b *Buffer) Ingest(channelID string, m *model.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[channelID] = append(b.pending[channelID], *m)
}

// ChannelCount reports how many channels currently have buffered messages.
func (b *Buffer) ChannelCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Drain removes and returns all buffered messages.
func (b *Buffer) Drain() map[string][]model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.pending
	b.pending = make(map[string][]model.Message)
	return drained
}

// Requeue puts messages back at the front of a channel's buffer, ahead of
// anything that arrived since the drain.
func (b *Buffer) Requeue(channelID string, msgs []model.Message) {
	if len(msgs) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[channelID] = append(msgs, b.pending[channelID]...)
}

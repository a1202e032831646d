package session

import "github.com/Pqvqn/GraphBrainstormExperiments/internal/model"

// HistoryLimit is the number of focus posts remembered for back/forward.
const HistoryLimit = 20

// History is the bounded list of posts the page was rooted at, with a
// movable pointer for stepping back and forward.
type History struct {
	entries []*model.Post
	index   int
}

// NewHistory creates a history holding only root.
func NewHistory(root *model.Post) *History {
	h := &History{}
	h.Reset(root)
	return h
}

// Reset forgets every entry and starts over at root.
func (h *History) Reset(root *model.Post) {
	h.entries = []*model.Post{root}
	h.index = 0
}

// Push records a new focus after the current one, dropping any forward
// entries. The oldest entry falls off once the limit is exceeded.
func (h *History) Push(p *model.Post) {
	h.entries = append(h.entries[:h.index+1:h.index+1], p)
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[1:]
	} else {
		h.index++
	}
}

// Back moves the pointer one entry back.
func (h *History) Back() (*model.Post, bool) {
	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the pointer one entry forward.
func (h *History) Forward() (*model.Post, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the entry under the pointer.
func (h *History) Current() *model.Post {
	return h.entries[h.index]
}

// Entries returns a copy of the recorded posts, oldest first.
func (h *History) Entries() []*model.Post {
	out := make([]*model.Post, len(h.entries))
	copy(out, h.entries)
	return out
}

// Index returns the pointer position within Entries.
func (h *History) Index() int {
	return h.index
}

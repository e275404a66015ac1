package board

// Entry is one undo step: the raster pixels and the icon list at that point.
type Entry struct {
	Pixels []byte
	Icons  []Icon
}

// History is a linear undo log. The first entry is the pristine background
// and is never removed.
type History struct {
	entries []Entry
}

// NewHistory starts a log whose root is e.
func NewHistory(root Entry) *History {
	return &History{entries: []Entry{root}}
}

// Push appends a step. There is no depth limit.
func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
}

// Len reports the number of entries, root included.
func (h *History) Len() int { return len(h.entries) }

// Current returns the newest entry.
func (h *History) Current() Entry { return h.entries[len(h.entries)-1] }

// Root returns the pristine entry.
func (h *History) Root() Entry { return h.entries[0] }

// Pop drops the newest entry and returns the one now on top. It refuses to
// pop the root and reports false in that case.
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) <= 1 {
		return h.Current(), false
	}
	h.entries[len(h.entries)-1] = Entry{}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), true
}

// Truncate discards everything but the root and returns it.
func (h *History) Truncate() Entry {
	for i := 1; i < len(h.entries); i++ {
		h.entries[i] = Entry{}
	}
	h.entries = h.entries[:1]
	return h.entries[0]
}

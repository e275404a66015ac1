package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPopKeepsRoot(t *testing.T) {
	h := NewHistory(Entry{Pixels: []byte{0}})
	_, ok := h.Pop()
	assert.False(t, ok)
	assert.Equal(t, 1, h.Len())

	h.Push(Entry{Pixels: []byte{1}})
	h.Push(Entry{Pixels: []byte{2}, Icons: []Icon{{ID: "a"}}})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []byte{2}, h.Current().Pixels)

	e, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, []byte{1}, e.Pixels)
	assert.Nil(t, e.Icons)
}

func TestHistoryTruncate(t *testing.T) {
	h := NewHistory(Entry{Pixels: []byte{7}})
	for i := 0; i < 4; i++ {
		h.Push(Entry{Pixels: []byte{byte(i)}})
	}
	root := h.Truncate()
	assert.Equal(t, []byte{7}, root.Pixels)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, root, h.Root())
}

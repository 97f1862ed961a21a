package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsFixedLengthAndUnpadded(t *testing.T) {
	id := New()
	assert.Len(t, id, 16)
	assert.NotContains(t, id, "=")
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		assert.False(t, seen[id], "duplicate id generated: %s", id)
		seen[id] = true
	}
}

package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateObserverID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := GenerateObserverID()
		require.NoError(t, err)
		assert.Len(t, id, 32)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

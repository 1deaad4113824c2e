package projects

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicID(t *testing.T) {
	re := regexp.MustCompile(`^bpad-\d{5}-\d{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewPublicID("bpad")
		require.NoError(t, err)
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	// not a uniqueness guarantee, but 50 collisions would mean the
	// generator is broken
	assert.Greater(t, len(seen), 1)
}

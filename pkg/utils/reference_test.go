package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := GenerateReference()
		require.NoError(t, err)
		assert.Len(t, ref, referenceLength)
		for _, c := range ref {
			assert.True(t, strings.ContainsRune(characters, c), "caractere fora do alfabeto: %q", c)
		}
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 45)
}

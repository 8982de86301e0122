package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrderReference(t *testing.T) {
	g, err := NewReferenceGenerator("test-salt")
	require.NoError(t, err)

	ref, err := g.NewOrderReference()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "SK-"))
	// 12 encoded characters minimum plus the prefix
	require.GreaterOrEqual(t, len(ref), 15)

	// The alphabet excludes ambiguous characters
	for _, c := range ref[3:] {
		require.NotContains(t, "01IO", string(c))
	}
}

func TestNewOrderReferenceVaries(t *testing.T) {
	g, err := NewReferenceGenerator("test-salt")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := g.NewOrderReference()
		require.NoError(t, err)
		require.False(t, seen[ref], "reference %s repeated", ref)
		seen[ref] = true
	}
}

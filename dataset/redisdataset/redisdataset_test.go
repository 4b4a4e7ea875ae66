package redisdataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-mika/eduml/dataset"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "samples:0", keyFor("samples", "0"))
	assert.Equal(t, "samples:count", keyFor("samples", "count"))
}

func TestStoredValue(t *testing.T) {
	le := dataset.NewLabelEncoder()
	le.Fit([]string{"cat", "dog"})
	encoders := map[string]*dataset.LabelEncoder{"species": le}

	t.Run("continuous column stores the raw number", func(t *testing.T) {
		v, err := storedValue("height", 4.5, encoders)
		require.NoError(t, err)
		assert.Equal(t, 4.5, v)
	})

	t.Run("encoded column stores the decoded label", func(t *testing.T) {
		v, err := storedValue("species", 1, encoders)
		require.NoError(t, err)
		assert.Equal(t, "dog", v)
	})

	t.Run("unknown code is an error", func(t *testing.T) {
		_, err := storedValue("species", 9, encoders)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no label for code 9")
	})
}

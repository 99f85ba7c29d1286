// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/studydojo/internal/storage"
)

// RunContract exercises an initialized Provider. It leaves the store holding
// only keys it did not touch.
func RunContract(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := p.Get("contract_missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, p.Set("contract_theme", "ninja"))
		v, ok, err := p.Get("contract_theme")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "ninja", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, p.Set("contract_theme", "shrine"))
		v, _, err := p.Get("contract_theme")
		require.NoError(t, err)
		require.Equal(t, "shrine", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, p.Set("contract_empty", ""))
		_, ok, err := p.Get("contract_empty")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("keys", func(t *testing.T) {
		keys, err := p.Keys()
		require.NoError(t, err)
		require.Contains(t, keys, "contract_theme")
		require.Contains(t, keys, "contract_empty")
		require.IsNonDecreasing(t, keys)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, p.Remove("contract_theme"))
		require.NoError(t, p.Remove("contract_empty"))
		_, ok, err := p.Get("contract_theme")
		require.NoError(t, err)
		require.False(t, ok)

		// Removing an absent key is not an error.
		require.NoError(t, p.Remove("contract_theme"))
	})

	t.Run("json round trip", func(t *testing.T) {
		type stream struct {
			ID   string `json:"id"`
			URL  string `json:"url"`
			Name string `json:"name"`
		}
		want := []stream{{ID: "1", URL: "https://youtu.be/jfKfPfyJRdk", Name: "lofi ☕"}}
		require.NoError(t, storage.SetJSON(p, "contract_streams", want))
		got, err := storage.GetJSON[[]stream](p, "contract_streams").Unwrap()
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, p.Remove("contract_streams"))
	})
}

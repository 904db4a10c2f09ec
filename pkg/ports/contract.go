package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contractRecord struct {
	Variables map[string]float64 `json:"variables"`
}

// RunConfigStoreContract runs a suite of tests to verify that a ConfigStore implementation
// adheres to the defined interface contract.
func RunConfigStoreContract(t *testing.T, store ConfigStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		record := contractRecord{Variables: map[string]float64{"x": 2, "tau": 6.283185307179586}}

		err := store.Save(ctx, key, record)
		require.NoError(t, err, "Save should not return error")

		var loaded contractRecord
		err = store.Load(ctx, key, &loaded)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		var loaded contractRecord
		err := store.Load(ctx, "non-existent-"+key, &loaded)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, contractRecord{Variables: map[string]float64{"a": 1, "b": 2}}))
		require.NoError(t, store.Save(ctx, key, contractRecord{Variables: map[string]float64{"a": 3}}))

		var loaded contractRecord
		require.NoError(t, store.Load(ctx, key, &loaded))
		assert.Equal(t, map[string]float64{"a": 3}, loaded.Variables, "Save should replace the whole record")
	})

	t.Run("Isolation", func(t *testing.T) {
		record := contractRecord{Variables: map[string]float64{"y": 1}}
		require.NoError(t, store.Save(ctx, key, record))

		// Mutating the caller's value after Save must not leak into the store.
		record.Variables["y"] = 100

		var loaded contractRecord
		require.NoError(t, store.Load(ctx, key, &loaded))
		assert.Equal(t, 1.0, loaded.Variables["y"])
	})
}

package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunConfigStoreContract(t, store)
}

func TestMemoryStore_FailWith(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("disk full")

	require.NoError(t, store.Save(ctx, "colors", map[string]string{"primary": "red"}))
	store.FailWith(boom)

	err := store.Save(ctx, "colors", map[string]string{"primary": "blue"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.Saves())

	raw, ok := store.Raw("colors")
	require.True(t, ok)
	assert.JSONEq(t, `{"primary":"red"}`, string(raw))
}

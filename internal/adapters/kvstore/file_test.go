package kvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RishabJha134/habitforge-engine/internal/adapters/kvstore"
	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

func TestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: values survive a reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "habitforge.json")

		sub, err := kvstore.NewFile(path)
		assert.Nil(t, err)
		assert.Nil(t, sub.Set(ctx, "k", "v"))

		reopened, err := kvstore.NewFile(path)
		assert.Nil(t, err)

		value, err := reopened.Get(ctx, "k")
		assert.Nil(t, err)
		assert.Equal(t, "v", value)
	})

	t.Run("Success: corrupted file resets to empty instead of failing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "habitforge.json")
		assert.Nil(t, os.WriteFile(path, []byte("{broken"), 0600))

		sub, err := kvstore.NewFile(path)
		assert.Nil(t, err)

		_, err = sub.Get(ctx, "anything")
		assert.True(t, errors.Is(err, store.ErrKeyNotFound))
	})

	t.Run("Success: remove and clear persist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "habitforge.json")

		sub, _ := kvstore.NewFile(path)
		assert.Nil(t, sub.Set(ctx, "a", "1"))
		assert.Nil(t, sub.Set(ctx, "b", "2"))
		assert.Nil(t, sub.Remove(ctx, "a"))

		reopened, _ := kvstore.NewFile(path)
		_, err := reopened.Get(ctx, "a")
		assert.True(t, errors.Is(err, store.ErrKeyNotFound))

		value, err := reopened.Get(ctx, "b")
		assert.Nil(t, err)
		assert.Equal(t, "2", value)

		assert.Nil(t, reopened.Clear(ctx))
		again, _ := kvstore.NewFile(path)
		_, err = again.Get(ctx, "b")
		assert.True(t, errors.Is(err, store.ErrKeyNotFound))
	})
}

package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/internal/platform"
	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("Creates Data Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "collection.json")

		repo, err := platform.Init(path, platform.WithForceTemp(true))
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")
		assert.Equal(t, path, fsRepo.Path)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Injected Repository Is Used As Is", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: "unused.json"})
		repo, err := platform.Init("ignored.json", platform.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})
}

func TestResolveDataPath(t *testing.T) {
	assert.Equal(t, "mine.json", platform.ResolveDataPath("mine.json", false))
	assert.Equal(t, platform.DefaultDataFileName, platform.ResolveDataPath("", false))

	sandboxed := platform.ResolveDataPath("/home/someone/collection.yaml", true)
	assert.Equal(t, filepath.Join(os.TempDir(), "deckhand-dev", "collection.yaml"), sandboxed)

	inTemp := filepath.Join(t.TempDir(), "c.json")
	assert.Equal(t, inTemp, platform.ResolveDataPath(inTemp, true))
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "collection.yaml")
	clock := func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	svc, err := platform.New(path, platform.WithForceTemp(true), platform.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, svc.LoadWarning())

	w, err := svc.Wishlist().Create(ctx, core.WishlistItem{Name: "Erdnase", Type: core.ItemBook, Price: 35, Priority: 3})
	require.NoError(t, err)
	assert.Equal(t, core.Date("2026-05-01"), w.AddedDate)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Erdnase")

	// Reopen read-only.
	ro, err := platform.New(path, platform.WithReadOnly(true))
	require.NoError(t, err)
	assert.Equal(t, 1, ro.Wishlist().Len())
	_, err = ro.Wishlist().Remove(ctx, core.ByName("Erdnase"))
	assert.True(t, errors.Is(err, core.ErrReadOnly))
	assert.Equal(t, 1, ro.Wishlist().Len())
}

func TestNew_CorruptFileWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	svc, err := platform.New(path, platform.WithForceTemp(true))
	require.NoError(t, err)
	var perr *core.PersistenceError
	assert.True(t, errors.As(svc.LoadWarning(), &perr))
	assert.Len(t, svc.Vocabulary(core.Manufacturers), len(core.DefaultManufacturers))
}

// countingJSON records how often the store was encoded.
type countingJSON struct {
	fs.JSONSerializer
	encodes *int
}

func (c countingJSON) Encode(snap core.Snapshot) ([]byte, error) {
	*c.encodes++
	return c.JSONSerializer.Encode(snap)
}

func TestWithSerializer(t *testing.T) {
	var encodes int
	path := filepath.Join(t.TempDir(), "collection.json")
	repo, err := platform.Init(path, platform.WithForceTemp(true), platform.WithSerializer(".json", countingJSON{encodes: &encodes}))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), core.DefaultSnapshot()))
	assert.Equal(t, 1, encodes)

	_, err = repo.Load(context.Background())
	require.NoError(t, err)
}

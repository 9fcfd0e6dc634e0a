package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

// setupRepo creates a repository whose store file lives in a fresh temp dir.
func setupRepo(t *testing.T, name string, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", name)
	cfg := fs.Config{Path: path}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, path
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Parent Directory", func(t *testing.T) {
		_, path := setupRepo(t, "deckhand.json")
		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Read Only Touches Nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent", "deckhand.json")
		repo := fs.NewRepository(fs.Config{Path: path, ReadOnly: true})
		require.NoError(t, repo.Initialize(context.Background()))
		_, err := os.Stat(filepath.Dir(path))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Rejects Empty Path", func(t *testing.T) {
		assert.Error(t, fs.NewRepository(fs.Config{}).Initialize(context.Background()))
	})
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	repo, _ := setupRepo(t, "deckhand.json")

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSnapshot(), snap)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"deckhand.json", "deckhand.yaml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo, path := setupRepo(t, name)

			snap := core.DefaultSnapshot()
			snap.Cards = append(snap.Cards, core.Card{
				ID: "c1", Name: "Fontaine Futures", PurchasePrice: 12, CurrentPrice: 20,
				Manufacturer: "Fontaine", OpeningStatus: core.StatusOpened, DesignRating: 5,
				Finish: core.FinishSmooth, DesignStyle: core.StyleModern, AddedDate: "2026-02-01",
			})
			snap.Genres = append(snap.Genres, "Bizarre")
			require.NoError(t, repo.Save(ctx, snap))

			// A second repository reads what the first wrote.
			other := fs.NewRepository(fs.Config{Path: path})
			got, err := other.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, snap.Cards, got.Cards)
			assert.Contains(t, got.Genres, "Bizarre")
			assert.IsNonDecreasing(t, got.Genres)
		})
	}
}

func TestLoad_CorruptFileDegrades(t *testing.T) {
	repo, path := setupRepo(t, "deckhand.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cards": [`), 0644))

	snap, err := repo.Load(context.Background())
	var perr *core.PersistenceError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, core.DefaultSnapshot(), snap)
}

func TestLoad_FillsMissingLists(t *testing.T) {
	repo, path := setupRepo(t, "deckhand.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cards":[{"id":"a","name":"Tally-Ho"}],"genres":["Coin","Coin",""]}`), 0644))

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.SchemaVersion, snap.Version)
	assert.Len(t, snap.Cards, 1)
	assert.NotNil(t, snap.Wishlist)
	assert.NotNil(t, snap.MagicTricks)
	assert.Equal(t, []string{"Coin"}, snap.Genres)
}

func TestSave_ReadOnly(t *testing.T) {
	repo, path := setupRepo(t, "deckhand.json", func(c *fs.Config) { c.ReadOnly = true })

	err := repo.Save(context.Background(), core.DefaultSnapshot())
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSave_ReportsPersistenceError(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t, "deckhand.json")
	require.NoError(t, repo.Save(ctx, core.DefaultSnapshot()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Removing the directory makes the temp file impossible to create.
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))
	err = repo.Save(ctx, core.DefaultSnapshot())
	var perr *core.PersistenceError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "save", perr.Op)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, before, 0644))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSnapshot(), got)
}

func TestState(t *testing.T) {
	repo, path := setupRepo(t, "deckhand.yml")

	state, ok := repo.State().(fs.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, path, state.Path)
	assert.Equal(t, "yaml", state.Format)
	assert.Nil(t, state.LastSave)
	assert.Equal(t, "repository", repo.ComponentType())

	require.NoError(t, repo.Save(context.Background(), core.DefaultSnapshot()))
	state = repo.State().(fs.RepositoryState)
	assert.NotNil(t, state.LastSave)
}

func TestService_PersistsThroughRepository(t *testing.T) {
	ctx := context.Background()
	repo, path := setupRepo(t, "deckhand.json")

	svc := core.NewService(repo, core.Config{})
	svc.Load(ctx)
	require.NoError(t, svc.LoadWarning())

	_, err := svc.Tricks().Create(ctx, core.MagicTrick{
		Name: "Card Warp", Genre: "Card (impromptu)", AmazementRating: 4, DifficultyRating: 2, AudienceSize: core.AudienceSmall,
	})
	require.NoError(t, err)

	reopened := core.NewService(fs.NewRepository(fs.Config{Path: path}), core.Config{})
	reopened.Load(ctx)
	require.NoError(t, reopened.LoadWarning())
	require.Equal(t, 1, reopened.Tricks().Len())
	assert.Equal(t, "Card Warp", reopened.Tricks().All()[0].Name)
}

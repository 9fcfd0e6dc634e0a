package fs_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

func seedSnapshot(n int) core.Snapshot {
	snap := core.DefaultSnapshot()
	for i := 0; i < n; i++ {
		snap.Cards = append(snap.Cards, core.Card{
			ID: fmt.Sprintf("card-%d", i), Name: fmt.Sprintf("Deck %d", i),
			PurchasePrice: float64(i % 40), CurrentPrice: float64(i % 55), Manufacturer: "Bicycle",
			OpeningStatus: core.StatusUnopened, DesignRating: 3.5, Finish: core.FinishAirCushion,
			DesignStyle: core.StyleClassic, AddedDate: "2026-01-01",
		})
	}
	return snap
}

// BenchmarkSave_1k_Cards measures a full atomic rewrite of a large collection.
// Run with: go test -bench=Save -benchmem -run=^$ ./pkg/adapters/fs/...
func BenchmarkSave_1k_Cards(b *testing.B) {
	for _, name := range []string{"collection.json", "collection.yaml"} {
		b.Run(name, func(b *testing.B) {
			repo := fs.NewRepository(fs.Config{Path: filepath.Join(b.TempDir(), name)})
			ctx := context.Background()
			require.NoError(b, repo.Initialize(ctx))
			snap := seedSnapshot(1000)

			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				if err := repo.Save(ctx, snap); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLoad_1k_Cards(b *testing.B) {
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(b.TempDir(), "collection.json")})
	ctx := context.Background()
	require.NoError(b, repo.Initialize(ctx))
	require.NoError(b, repo.Save(ctx, seedSnapshot(1000)))

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := repo.Load(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

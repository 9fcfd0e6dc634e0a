package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/pkg/core"
)

func sampleSnapshot() core.Snapshot {
	snap := core.DefaultSnapshot()
	snap.Cards = []core.Card{{
		ID: "c1", Name: "Bicycle Rider Back", PurchasePrice: 5, CurrentPrice: 8,
		Manufacturer: "Bicycle", OpeningStatus: core.StatusUnopened, DesignRating: 4.5,
		Finish: core.FinishAirCushion, DesignStyle: core.StyleClassic, AddedDate: "2026-01-02",
	}}
	snap.Wishlist = []core.WishlistItem{{
		ID: "w1", Name: "Smoke & Mirrors V8", Type: core.ItemCard, Price: 30, Priority: 4.5, AddedDate: "2026-01-03",
	}}
	snap.MagicTricks = []core.MagicTrick{{
		ID: "t1", Name: "Ambitious Card", Genre: "Card (impromptu)", AmazementRating: 4, DifficultyRating: 2,
		AudienceSize: core.AudienceSmall, PerformanceTime: 5, AddedDate: "2026-01-04",
	}}
	return snap
}

func TestSerializers(t *testing.T) {
	snap := sampleSnapshot()

	for ext, s := range DefaultSerializers() {
		t.Run(ext, func(t *testing.T) {
			data, err := s.Encode(snap)
			require.NoError(t, err)

			got, err := s.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, snap, got)
		})
	}
}

func TestSerializers_FieldNames(t *testing.T) {
	data, err := JSONSerializer{}.Encode(sampleSnapshot())
	require.NoError(t, err)
	out := string(data)
	for _, key := range []string{`"magic_tricks"`, `"purchase_price"`, `"opening_status"`, `"added_date"`, `"audience_size"`} {
		assert.Contains(t, out, key)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))

	data, err = YAMLSerializer{}.Encode(sampleSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), "magic_tricks:")
	assert.Contains(t, string(data), "design_rating: 4.5")
}

func TestSerializers_RejectEmpty(t *testing.T) {
	_, err := JSONSerializer{}.Decode([]byte("  \n"))
	assert.Error(t, err)
	_, err = YAMLSerializer{}.Decode(nil)
	assert.Error(t, err)
	_, err = JSONSerializer{}.Decode([]byte("{not json"))
	assert.ErrorContains(t, err, "invalid json")
}

func TestSerializerFor(t *testing.T) {
	registry := DefaultSerializers()
	assert.IsType(t, YAMLSerializer{}, serializerFor("/data/deckhand.YML", registry))
	assert.IsType(t, JSONSerializer{}, serializerFor("/data/deckhand.json", registry))
	assert.IsType(t, JSONSerializer{}, serializerFor("/data/deckhand.db", registry))
}

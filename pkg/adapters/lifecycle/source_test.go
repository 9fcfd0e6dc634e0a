package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/pkg/adapters/lifecycle"
	"github.com/aretw0/deckhand/pkg/core"
)

const storePath = "/data/collection.json"

func TestSource_PublishesStoreChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 4)
	src := lifecycle.NewSource(in, storePath)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventModify, ID: storePath, Timestamp: 1}
	in <- core.Event{Type: core.EventModify, ID: "/data/other.json", Timestamp: 2}
	in <- core.Event{Type: "RENAME", ID: storePath, Timestamp: 3}
	in <- core.Event{Type: core.EventDelete, ID: "/data/./collection.json", Timestamp: 4}
	close(in)

	var got []lifecycle.Change
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				require.Len(t, got, 2)
				assert.Equal(t, core.EventModify, got[0].Type)
				assert.Equal(t, time.Unix(1, 0), got[0].At)
				assert.Equal(t, core.EventDelete, got[1].Type)
				assert.Contains(t, got[0].String(), "collection.json was edited by another program")
				assert.Contains(t, got[1].String(), "collection.json was removed")
				return
			}
			change, isChange := e.(lifecycle.Change)
			require.True(t, isChange, "unexpected event type %T", e)
			got = append(got, change)
		case <-timeout:
			t.Fatal("timeout waiting for source to close")
		}
	}
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := lifecycle.NewSource(make(chan core.Event), storePath)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close after cancel")
	}
}

package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"networkingbude/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eventScope   = domain.NewScope(domain.CollectionEvents, "grand-rapids")
	contentScope = domain.NewScope(domain.CollectionContent, "")
)

func eventPayload(title string) domain.SlotPayload {
	starts := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	return domain.SlotPayload{Title: title, StartsAt: &starts, Location: "Downtown"}
}

func contentPayload(title string) domain.SlotPayload {
	return domain.SlotPayload{Title: title, Description: "Read more", ExternalURL: "https://example.com/" + title}
}

func loadedRegistry(t *testing.T, repo domain.SlotRepository, scope domain.Scope, opts ...RegistryOption) *SlotRegistry {
	t.Helper()
	reg := NewSlotRegistry(repo, scope, testLogger, opts...)
	require.NoError(t, reg.Load(context.Background()))
	return reg
}

func TestSlotRegistry_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes by slot number and sets aside out-of-range rows", func(t *testing.T) {
		repo := newFakeSlotRepo()
		a := repo.seed(eventScope, 1, "Event A")
		c := repo.seed(eventScope, 3, "Event C")
		stuck := repo.seed(eventScope, domain.SentinelSlotNumber, "Stuck")
		repo.seed(domain.NewScope(domain.CollectionEvents, "detroit"), 2, "Elsewhere")

		reg := loadedRegistry(t, repo, eventScope)
		snap := reg.Snapshot()
		require.Len(t, snap.Positions, 7)
		assert.Equal(t, a.ID, snap.Positions[0].ID)
		assert.Nil(t, snap.Positions[1])
		assert.Equal(t, c.ID, snap.Positions[2].ID)
		require.Len(t, snap.Anomalies, 1)
		assert.Equal(t, stuck.ID, snap.Anomalies[0].ID)
		assert.Equal(t, 2, reg.FirstEmpty())
	})

	t.Run("store error leaves previous table untouched", func(t *testing.T) {
		repo := newFakeSlotRepo()
		a := repo.seed(eventScope, 1, "Event A")
		reg := loadedRegistry(t, repo, eventScope)

		repo.seed(eventScope, 2, "Event B")
		repo.listErr = errConnReset
		err := reg.Load(ctx)
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)

		snap := reg.Snapshot()
		assert.Equal(t, a.ID, snap.Positions[0].ID)
		assert.Nil(t, snap.Positions[1])
	})
}

func TestSlotRegistry_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("insert derives is_featured from slot number", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.Save(ctx, 4, eventPayload("Featured")))
		require.NoError(t, reg.Save(ctx, 5, eventPayload("Regular")))

		assert.True(t, reg.At(4).IsFeatured)
		assert.False(t, reg.At(5).IsFeatured)
		assert.Equal(t, "grand-rapids", reg.At(4).RegionID)
		assert.Equal(t, []string{"insert 4", "insert 5"}, repo.writes)
	})

	t.Run("existing record is updated in place", func(t *testing.T) {
		repo := newFakeSlotRepo()
		existing := repo.seed(eventScope, 2, "Old")
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.Save(ctx, 2, eventPayload("  New  ")))
		assert.Equal(t, existing.ID, reg.At(2).ID)
		assert.Equal(t, "New", reg.At(2).Payload.Title)
		assert.Equal(t, []string{"update payload " + existing.ID}, repo.writes)
	})

	t.Run("missing title fails validation without store writes", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, eventScope)

		err := reg.Save(ctx, 5, domain.SlotPayload{Title: ""})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"title", "starts_at", "location"}, verr.Fields)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, repo.writes)
		assert.Empty(t, reg.Snapshot().Occupied())
	})

	t.Run("content requires description and a valid link", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, contentScope)

		err := reg.Save(ctx, 1, domain.SlotPayload{Title: "Insight", ExternalURL: "not a url", ImageURL: "also bad"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"description", "external_url", "image_url"}, verr.Fields)
	})

	t.Run("event links must be URLs when present", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, eventScope)

		p := eventPayload("Build night")
		p.ExternalURL = "not a url"
		err := reg.Save(ctx, 1, p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"external_url"}, verr.Fields)
		assert.Empty(t, repo.writes)

		p.ExternalURL = "https://makers.example/june"
		require.NoError(t, reg.Save(ctx, 1, p))
		assert.Equal(t, "https://makers.example/june", reg.At(1).Payload.ExternalURL)

		p.ExternalURL = ""
		require.NoError(t, reg.Save(ctx, 2, p))
	})

	t.Run("out of range slot number", func(t *testing.T) {
		reg := loadedRegistry(t, newFakeSlotRepo(), eventScope)
		require.ErrorIs(t, reg.Save(ctx, 8, eventPayload("Too far")), domain.ErrSlotOutOfRange)
	})

	t.Run("store error surfaces and table is not changed", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, eventScope)
		repo.insertErr = errConnReset

		err := reg.Save(ctx, 1, eventPayload("Event A"))
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Nil(t, reg.At(1))
	})
}

func TestSlotRegistry_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("position becomes absent after reload", func(t *testing.T) {
		repo := newFakeSlotRepo()
		repo.seed(eventScope, 1, "Event A")
		b := repo.seed(eventScope, 2, "Event B")
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.Delete(ctx, 1))
		assert.Nil(t, reg.At(1))

		require.NoError(t, reg.Load(ctx))
		assert.Nil(t, reg.Snapshot().Positions[0])
		assert.Equal(t, b.ID, reg.At(2).ID)
	})

	t.Run("empty position", func(t *testing.T) {
		reg := loadedRegistry(t, newFakeSlotRepo(), eventScope)
		require.ErrorIs(t, reg.Delete(ctx, 3), domain.ErrNotFound)
	})

	t.Run("store error keeps the slot", func(t *testing.T) {
		repo := newFakeSlotRepo()
		a := repo.seed(eventScope, 1, "Event A")
		reg := loadedRegistry(t, repo, eventScope)
		repo.deleteErr = errConnReset

		require.Error(t, reg.Delete(ctx, 1))
		assert.Equal(t, a.ID, reg.At(1).ID)
	})
}

func TestSlotRegistry_MoveAdjacent(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps with occupied neighbour by id", func(t *testing.T) {
		repo := newFakeSlotRepo()
		a := repo.seed(eventScope, 1, "Event A")
		b := repo.seed(eventScope, 2, "Event B")
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.MoveAdjacent(ctx, 2, domain.DirectionUp))
		assert.Equal(t, b.ID, reg.At(1).ID)
		assert.Equal(t, a.ID, reg.At(2).ID)
		assert.Equal(t, []string{
			"move " + b.ID + " 99",
			"move " + a.ID + " 2",
			"move " + b.ID + " 1",
		}, repo.writes)
		assert.Empty(t, reg.Snapshot().Anomalies)
	})

	t.Run("moves into empty neighbour with a single write", func(t *testing.T) {
		repo := newFakeSlotRepo()
		c := repo.seed(eventScope, 3, "Event C")
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.MoveAdjacent(ctx, 3, domain.DirectionUp))
		assert.Equal(t, c.ID, reg.At(2).ID)
		assert.Nil(t, reg.At(3))
		assert.Len(t, repo.writes, 1)
	})

	t.Run("is_featured follows the slot number across the boundary", func(t *testing.T) {
		repo := newFakeSlotRepo()
		four := repo.seed(eventScope, 4, "Four")
		five := repo.seed(eventScope, 5, "Five")
		reg := loadedRegistry(t, repo, eventScope)
		require.True(t, reg.At(4).IsFeatured)

		require.NoError(t, reg.MoveAdjacent(ctx, 4, domain.DirectionDown))
		assert.Equal(t, four.ID, reg.At(5).ID)
		assert.False(t, reg.At(5).IsFeatured)
		assert.Equal(t, five.ID, reg.At(4).ID)
		assert.True(t, reg.At(4).IsFeatured)
	})

	t.Run("up then down restores the original mapping", func(t *testing.T) {
		repo := newFakeSlotRepo()
		ids := map[int]string{}
		for n := 1; n <= 4; n++ {
			ids[n] = repo.seed(eventScope, n, "Event").ID
		}
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.MoveAdjacent(ctx, 3, domain.DirectionUp))
		require.NoError(t, reg.MoveAdjacent(ctx, 2, domain.DirectionDown))
		for n, id := range ids {
			assert.Equal(t, id, reg.At(n).ID, "slot %d", n)
		}
	})

	t.Run("boundary and precondition checks", func(t *testing.T) {
		repo := newFakeSlotRepo()
		repo.seed(eventScope, 1, "First")
		repo.seed(eventScope, 7, "Last")
		reg := loadedRegistry(t, repo, eventScope)

		require.ErrorIs(t, reg.MoveAdjacent(ctx, 1, domain.DirectionUp), domain.ErrInvalidInput)
		require.ErrorIs(t, reg.MoveAdjacent(ctx, 7, domain.DirectionDown), domain.ErrInvalidInput)
		require.ErrorIs(t, reg.MoveAdjacent(ctx, 3, domain.DirectionUp), domain.ErrNotFound)
		require.ErrorIs(t, reg.MoveAdjacent(ctx, 0, domain.DirectionDown), domain.ErrSlotOutOfRange)
		require.ErrorIs(t, reg.MoveAdjacent(ctx, 2, domain.Direction("sideways")), domain.ErrInvalidInput)
		assert.Empty(t, repo.writes)
	})

	t.Run("failure on second step leaves the source on the sentinel", func(t *testing.T) {
		repo := newFakeSlotRepo()
		a := repo.seed(eventScope, 1, "Event A")
		b := repo.seed(eventScope, 2, "Event B")
		reg := loadedRegistry(t, repo, eventScope)
		repo.failMoveOn = 2
		repo.moveErr = errConnReset

		err := reg.MoveAdjacent(ctx, 2, domain.DirectionUp)
		require.Error(t, err)
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		var inconsistent *domain.InconsistentStateError
		require.ErrorAs(t, err, &inconsistent)

		snap := reg.Snapshot()
		require.Len(t, snap.Anomalies, 1)
		assert.Equal(t, b.ID, snap.Anomalies[0].ID)
		assert.Equal(t, domain.SentinelSlotNumber, snap.Anomalies[0].SlotNumber)
		assert.Equal(t, a.ID, reg.At(1).ID)
		assert.Nil(t, reg.At(2))
	})

	t.Run("atomic swap mode leaves nothing behind on failure", func(t *testing.T) {
		repo := &fakeSwapperRepo{fakeSlotRepo: newFakeSlotRepo(), swapErr: errConnReset}
		a := repo.seed(eventScope, 1, "Event A")
		b := repo.seed(eventScope, 2, "Event B")
		reg := loadedRegistry(t, repo, eventScope, WithAtomicSwaps(true))

		err := reg.MoveAdjacent(ctx, 2, domain.DirectionUp)
		require.Error(t, err)
		var inconsistent *domain.InconsistentStateError
		assert.False(t, errors.As(err, &inconsistent))
		assert.Equal(t, a.ID, reg.At(1).ID)
		assert.Equal(t, b.ID, reg.At(2).ID)
		assert.Empty(t, reg.Snapshot().Anomalies)
		assert.Equal(t, 1, repo.swapCalls)
	})

	t.Run("atomic swap mode success", func(t *testing.T) {
		repo := &fakeSwapperRepo{fakeSlotRepo: newFakeSlotRepo()}
		four := repo.seed(eventScope, 4, "Four")
		five := repo.seed(eventScope, 5, "Five")
		reg := loadedRegistry(t, repo, eventScope, WithAtomicSwaps(true))

		require.NoError(t, reg.MoveAdjacent(ctx, 5, domain.DirectionUp))
		assert.Equal(t, five.ID, reg.At(4).ID)
		assert.True(t, reg.At(4).IsFeatured)
		assert.Equal(t, 5, repo.numberOf(four.ID))
		assert.Empty(t, repo.writes)
	})
}

func TestSlotRegistry_RepairAnomaly(t *testing.T) {
	ctx := context.Background()

	// strand leaves the row seeded at slot 2 on the sentinel by failing the
	// second write of a move up.
	strand := func(t *testing.T) (*fakeSlotRepo, *SlotRegistry, map[int]string) {
		t.Helper()
		repo := newFakeSlotRepo()
		ids := map[int]string{}
		for n := 1; n <= 4; n++ {
			ids[n] = repo.seed(eventScope, n, "Event").ID
		}
		reg := loadedRegistry(t, repo, eventScope)
		repo.failMoveOn = 2
		repo.moveErr = errConnReset
		require.Error(t, reg.MoveAdjacent(ctx, 2, domain.DirectionUp))
		require.Len(t, reg.Snapshot().Anomalies, 1)
		require.Equal(t, ids[2], reg.Snapshot().Anomalies[0].ID)
		repo.writes = nil
		return repo, reg, ids
	}

	t.Run("swaps are refused while the sentinel is taken", func(t *testing.T) {
		repo, reg, _ := strand(t)

		err := reg.MoveAdjacent(ctx, 3, domain.DirectionDown)
		require.ErrorIs(t, err, domain.ErrSentinelOccupied)
		assert.Empty(t, repo.writes)

		// a move into an empty neighbour needs no sentinel
		require.NoError(t, reg.MoveAdjacent(ctx, 1, domain.DirectionDown))
	})

	t.Run("restore returns the row to an empty position", func(t *testing.T) {
		repo, reg, ids := strand(t)

		require.NoError(t, reg.RestoreAnomaly(ctx, ids[2], 2))
		assert.Empty(t, reg.Snapshot().Anomalies)
		require.NotNil(t, reg.At(2))
		assert.Equal(t, ids[2], reg.At(2).ID)
		assert.True(t, reg.At(2).IsFeatured)
		assert.Equal(t, []string{"move " + ids[2] + " 2"}, repo.writes)

		require.NoError(t, reg.MoveAdjacent(ctx, 3, domain.DirectionDown))
		assert.Equal(t, ids[3], reg.At(4).ID)
		assert.Equal(t, ids[4], reg.At(3).ID)
	})

	t.Run("restore preconditions", func(t *testing.T) {
		repo, reg, ids := strand(t)

		require.ErrorIs(t, reg.RestoreAnomaly(ctx, ids[2], 1), domain.ErrInvalidInput)
		require.ErrorIs(t, reg.RestoreAnomaly(ctx, ids[2], 8), domain.ErrSlotOutOfRange)
		require.ErrorIs(t, reg.RestoreAnomaly(ctx, ids[1], 2), domain.ErrNotFound)
		require.ErrorIs(t, reg.RestoreAnomaly(ctx, "missing", 2), domain.ErrNotFound)
		assert.Empty(t, repo.writes)
	})

	t.Run("delete removes the stranded row", func(t *testing.T) {
		repo, reg, ids := strand(t)

		require.NoError(t, reg.DeleteAnomaly(ctx, ids[2]))
		assert.Empty(t, reg.Snapshot().Anomalies)
		assert.Zero(t, repo.numberOf(ids[2]))
		assert.Nil(t, reg.At(2))

		require.ErrorIs(t, reg.DeleteAnomaly(ctx, ids[2]), domain.ErrNotFound)
		require.ErrorIs(t, reg.DeleteAnomaly(ctx, ids[1]), domain.ErrNotFound)
	})
}

func TestSlotRegistry_SwapNonAdjacent(t *testing.T) {
	ctx := context.Background()

	t.Run("moves content into an empty slot", func(t *testing.T) {
		repo := newFakeSlotRepo()
		two := repo.seed(contentScope, 2, "Two")
		reg := loadedRegistry(t, repo, contentScope)

		require.NoError(t, reg.SwapNonAdjacent(ctx, 2, 7))
		assert.Nil(t, reg.At(2))
		require.NotNil(t, reg.At(7))
		assert.Equal(t, "Two", reg.At(7).Payload.Title)
		assert.NotEqual(t, two.ID, reg.At(7).ID)
	})

	t.Run("exchanges two occupied slots", func(t *testing.T) {
		repo := newFakeSlotRepo()
		repo.seed(contentScope, 1, "One")
		repo.seed(contentScope, 9, "Nine")
		reg := loadedRegistry(t, repo, contentScope)

		require.NoError(t, reg.SwapNonAdjacent(ctx, 1, 9))
		assert.Equal(t, "Nine", reg.At(1).Payload.Title)
		assert.Equal(t, "One", reg.At(9).Payload.Title)
	})

	t.Run("event swap recomputes is_featured", func(t *testing.T) {
		repo := newFakeSlotRepo()
		repo.seed(eventScope, 1, "One")
		reg := loadedRegistry(t, repo, eventScope)

		require.NoError(t, reg.SwapNonAdjacent(ctx, 1, 6))
		assert.False(t, reg.At(6).IsFeatured)
	})

	t.Run("neither occupied fails before any write", func(t *testing.T) {
		repo := newFakeSlotRepo()
		reg := loadedRegistry(t, repo, contentScope)

		require.ErrorIs(t, reg.SwapNonAdjacent(ctx, 3, 8), domain.ErrNothingToSwap)
		assert.Empty(t, repo.writes)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		reg := loadedRegistry(t, newFakeSlotRepo(), contentScope)
		require.ErrorIs(t, reg.SwapNonAdjacent(ctx, 2, 2), domain.ErrInvalidInput)
		require.ErrorIs(t, reg.SwapNonAdjacent(ctx, 2, 11), domain.ErrSlotOutOfRange)
	})

	t.Run("failed reinsert is revealed by the reload", func(t *testing.T) {
		repo := newFakeSlotRepo()
		two := repo.seed(contentScope, 2, "Two")
		var logs bytes.Buffer
		reg := NewSlotRegistry(repo, contentScope, slog.New(slog.NewJSONHandler(&logs, nil)))
		require.NoError(t, reg.Load(ctx))
		repo.insertErr = errConnReset

		require.Error(t, reg.SwapNonAdjacent(ctx, 2, 7))
		assert.Empty(t, reg.Snapshot().Occupied())

		out := logs.String()
		assert.Contains(t, out, `"msg":"slot dropped during swap"`)
		assert.Contains(t, out, `"level":"ERROR"`)
		assert.Contains(t, out, two.ID)
		assert.Contains(t, out, `\"title\":\"Two\"`)
	})
}

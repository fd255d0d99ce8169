package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"networkingbude/internal/domain"
)

// SlotRegistry holds the ordered slots of one scope as a table keyed by slot
// number. The table is only replaced by Load, which every reordering operation
// runs after its writes, successful or not.
type SlotRegistry struct {
	repo        domain.SlotRepository
	scope       domain.Scope
	logger      *slog.Logger
	atomicSwaps bool
	now         func() time.Time

	loaded    bool
	positions []*domain.Slot
	anomalies []*domain.Slot
}

// RegistryOption configures a SlotRegistry.
type RegistryOption func(*SlotRegistry)

// WithAtomicSwaps makes occupied-target moves run in a single store transaction
// when the repository implements domain.SlotNumberSwapper.
func WithAtomicSwaps(enabled bool) RegistryOption {
	return func(r *SlotRegistry) { r.atomicSwaps = enabled }
}

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *SlotRegistry) { r.now = now }
}

// NewSlotRegistry returns an empty registry for scope. Call Load before reading it.
func NewSlotRegistry(repo domain.SlotRepository, scope domain.Scope, logger *slog.Logger, opts ...RegistryOption) *SlotRegistry {
	r := &SlotRegistry{
		repo:      repo,
		scope:     scope,
		logger:    logger,
		now:       time.Now,
		positions: make([]*domain.Slot, scope.Collection.MaxSlots()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scope returns the scope the registry manages.
func (r *SlotRegistry) Scope() domain.Scope {
	return r.scope
}

// Load replaces the in-memory table with the store's rows. On error the
// previous table is left as it was.
func (r *SlotRegistry) Load(ctx context.Context) error {
	rows, err := r.repo.ListByScope(ctx, r.scope)
	if err != nil {
		return fmt.Errorf("load %s: %w", r.scope, err)
	}
	positions := make([]*domain.Slot, r.scope.Collection.MaxSlots())
	var anomalies []*domain.Slot
	for _, s := range rows {
		if !r.scope.Collection.InRange(s.SlotNumber) || positions[s.SlotNumber-1] != nil {
			anomalies = append(anomalies, s)
			continue
		}
		positions[s.SlotNumber-1] = s
	}
	r.positions = positions
	r.anomalies = anomalies
	r.loaded = true
	if len(anomalies) > 0 {
		r.logger.WarnContext(ctx, "scope has out-of-range slots", "scope", r.scope.String(), "count", len(anomalies))
	}
	return nil
}

func (r *SlotRegistry) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	return r.Load(ctx)
}

// Snapshot returns a copy of the current table.
func (r *SlotRegistry) Snapshot() domain.SlotSnapshot {
	positions := make([]*domain.Slot, len(r.positions))
	copy(positions, r.positions)
	anomalies := make([]*domain.Slot, len(r.anomalies))
	copy(anomalies, r.anomalies)
	return domain.SlotSnapshot{Scope: r.scope, Positions: positions, Anomalies: anomalies}
}

// At returns the slot at position n, or nil when the position is empty or out of range.
func (r *SlotRegistry) At(n int) *domain.Slot {
	if !r.scope.Collection.InRange(n) {
		return nil
	}
	return r.positions[n-1]
}

// FirstEmpty returns the lowest empty position, or 0 when the scope is full.
func (r *SlotRegistry) FirstEmpty() int {
	for i, s := range r.positions {
		if s == nil {
			return i + 1
		}
	}
	return 0
}

func (r *SlotRegistry) checkRange(n int) error {
	if !r.scope.Collection.InRange(n) {
		return fmt.Errorf("slot %d not in 1..%d: %w", n, r.scope.Collection.MaxSlots(), domain.ErrSlotOutOfRange)
	}
	return nil
}

// Save validates payload, then updates the row at position n or inserts a new
// one, and reloads the scope.
func (r *SlotRegistry) Save(ctx context.Context, n int, payload domain.SlotPayload) error {
	payload = normalizePayload(payload)
	if err := validatePayload(r.scope.Collection, payload); err != nil {
		return err
	}
	if err := r.checkRange(n); err != nil {
		return err
	}
	existing, err := r.repo.GetByNumber(ctx, r.scope, n)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		slot := domain.NewSlot(r.scope, n, payload, r.now())
		if err := r.repo.Insert(ctx, slot); err != nil {
			return fmt.Errorf("insert slot %d: %w", n, err)
		}
		r.logger.InfoContext(ctx, "slot created", "scope", r.scope.String(), "slot", n, "id", slot.ID)
	case err != nil:
		return fmt.Errorf("get slot %d: %w", n, err)
	default:
		if err := r.repo.UpdatePayload(ctx, existing.ID, payload); err != nil {
			return fmt.Errorf("update slot %d: %w", n, err)
		}
		r.logger.InfoContext(ctx, "slot updated", "scope", r.scope.String(), "slot", n, "id", existing.ID)
	}
	return r.Load(ctx)
}

// Delete removes the row at position n and marks the position empty.
func (r *SlotRegistry) Delete(ctx context.Context, n int) error {
	if err := r.checkRange(n); err != nil {
		return err
	}
	if err := r.repo.DeleteByNumber(ctx, r.scope, n); err != nil {
		return fmt.Errorf("delete slot %d: %w", n, err)
	}
	r.positions[n-1] = nil
	r.logger.InfoContext(ctx, "slot deleted", "scope", r.scope.String(), "slot", n)
	return nil
}

// MoveAdjacent moves the slot at position n one position up or down, exchanging
// places with the neighbour when that position is occupied.
func (r *SlotRegistry) MoveAdjacent(ctx context.Context, n int, dir domain.Direction) error {
	if dir != domain.DirectionUp && dir != domain.DirectionDown {
		return fmt.Errorf("direction %q: %w", dir, domain.ErrInvalidInput)
	}
	if err := r.checkRange(n); err != nil {
		return err
	}
	target := n + dir.Offset()
	if !r.scope.Collection.InRange(target) {
		return fmt.Errorf("cannot move slot %d %s: %w", n, dir, domain.ErrInvalidInput)
	}
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}
	source := r.positions[n-1]
	if source == nil {
		return fmt.Errorf("slot %d: %w", n, domain.ErrNotFound)
	}
	neighbour := r.positions[target-1]
	if neighbour != nil && r.sentinelTaken() {
		return fmt.Errorf("move slot %d %s: %w", n, dir, domain.ErrSentinelOccupied)
	}

	var err error
	if neighbour == nil {
		err = r.repo.UpdateSlotNumber(ctx, source.ID, target, r.scope.Collection.IsFeatured(target))
	} else {
		err = r.exchange(ctx, source, neighbour)
	}
	return r.reloadAfter(ctx, fmt.Sprintf("move slot %d %s", n, dir), err)
}

// exchange swaps the positions of two persisted rows, addressing writes by id.
func (r *SlotRegistry) exchange(ctx context.Context, a, b *domain.Slot) error {
	if swapper, ok := r.repo.(domain.SlotNumberSwapper); ok && r.atomicSwaps {
		return swapper.SwapSlotNumbers(ctx, r.scope, a, b)
	}
	c := r.scope.Collection
	steps := []struct {
		id     string
		number int
	}{
		{a.ID, domain.SentinelSlotNumber},
		{b.ID, a.SlotNumber},
		{a.ID, b.SlotNumber},
	}
	for i, st := range steps {
		r.logger.DebugContext(ctx, "swap step", "scope", r.scope.String(), "step", i+1, "id", st.id, "slot", st.number)
		if err := r.repo.UpdateSlotNumber(ctx, st.id, st.number, c.IsFeatured(st.number)); err != nil {
			return fmt.Errorf("swap step %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *SlotRegistry) sentinelTaken() bool {
	for _, a := range r.anomalies {
		if a.SlotNumber == domain.SentinelSlotNumber {
			return true
		}
	}
	return false
}

// Anomaly returns the out-of-range row with the given id, or nil.
func (r *SlotRegistry) Anomaly(id string) *domain.Slot {
	for _, a := range r.anomalies {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// RestoreAnomaly moves the out-of-range row id back to the empty position n.
func (r *SlotRegistry) RestoreAnomaly(ctx context.Context, id string, n int) error {
	if err := r.checkRange(n); err != nil {
		return err
	}
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}
	if r.Anomaly(id) == nil {
		return fmt.Errorf("anomaly %s: %w", id, domain.ErrNotFound)
	}
	if r.positions[n-1] != nil {
		return fmt.Errorf("slot %d is occupied: %w", n, domain.ErrInvalidInput)
	}
	err := r.repo.UpdateSlotNumber(ctx, id, n, r.scope.Collection.IsFeatured(n))
	return r.reloadAfter(ctx, fmt.Sprintf("restore %s to slot %d", id, n), err)
}

// DeleteAnomaly removes the out-of-range row id.
func (r *SlotRegistry) DeleteAnomaly(ctx context.Context, id string) error {
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}
	if r.Anomaly(id) == nil {
		return fmt.Errorf("anomaly %s: %w", id, domain.ErrNotFound)
	}
	return r.reloadAfter(ctx, "delete anomaly "+id, r.repo.DeleteByID(ctx, id))
}

// SwapNonAdjacent exchanges the records at positions a and b by deleting and
// reinserting them. Reinserted rows get new ids and timestamps.
func (r *SlotRegistry) SwapNonAdjacent(ctx context.Context, a, b int) error {
	if err := r.checkRange(a); err != nil {
		return err
	}
	if err := r.checkRange(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("swap slot %d with itself: %w", a, domain.ErrInvalidInput)
	}
	slotA, err := r.fetch(ctx, a)
	if err != nil {
		return err
	}
	slotB, err := r.fetch(ctx, b)
	if err != nil {
		return err
	}
	if slotA == nil && slotB == nil {
		return domain.ErrNothingToSwap
	}
	return r.reloadAfter(ctx, fmt.Sprintf("swap slots %d and %d", a, b), r.recreateSwapped(ctx, slotA, b, slotB, a))
}

func (r *SlotRegistry) fetch(ctx context.Context, n int) (*domain.Slot, error) {
	s, err := r.repo.GetByNumber(ctx, r.scope, n)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %d: %w", n, err)
	}
	return s, nil
}

func (r *SlotRegistry) recreateSwapped(ctx context.Context, slotA *domain.Slot, toA int, slotB *domain.Slot, toB int) error {
	for _, s := range []*domain.Slot{slotA, slotB} {
		if s == nil {
			continue
		}
		if err := r.repo.DeleteByID(ctx, s.ID); err != nil {
			return fmt.Errorf("delete slot %d: %w", s.SlotNumber, err)
		}
	}
	now := r.now()
	moves := []struct {
		slot *domain.Slot
		to   int
	}{{slotA, toA}, {slotB, toB}}
	for i, m := range moves {
		if m.slot == nil {
			continue
		}
		if err := r.repo.Insert(ctx, domain.NewSlot(r.scope, m.to, m.slot.Payload, now)); err != nil {
			for _, lost := range moves[i:] {
				if lost.slot != nil {
					r.logDropped(ctx, lost.slot)
				}
			}
			return fmt.Errorf("reinsert slot %d at %d: %w", m.slot.SlotNumber, m.to, err)
		}
	}
	return nil
}

// logDropped records a deleted row that could not be reinserted, with its full
// payload, so it can be re-entered by hand.
func (r *SlotRegistry) logDropped(ctx context.Context, s *domain.Slot) {
	payload, _ := json.Marshal(s.Payload)
	r.logger.ErrorContext(ctx, "slot dropped during swap",
		"scope", r.scope.String(), "id", s.ID, "slot", s.SlotNumber, "payload", string(payload))
}

// reloadAfter reloads the scope regardless of opErr so the table reflects what the
// store holds. A failed operation that leaves rows out of range also reports an
// *domain.InconsistentStateError.
func (r *SlotRegistry) reloadAfter(ctx context.Context, op string, opErr error) error {
	loadErr := r.Load(ctx)
	if opErr == nil {
		if loadErr == nil {
			r.logger.InfoContext(ctx, op, "scope", r.scope.String())
		}
		return loadErr
	}
	r.logger.ErrorContext(ctx, op+" failed", "scope", r.scope.String(), "err", opErr)
	err := fmt.Errorf("%s: %w", op, opErr)
	if loadErr != nil {
		return errors.Join(err, loadErr)
	}
	if len(r.anomalies) > 0 {
		return errors.Join(err, &domain.InconsistentStateError{Scope: r.scope, Anomalies: r.Snapshot().Anomalies})
	}
	return err
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"networkingbude/internal/domain"
)

type slotService struct {
	slotRepo       domain.SlotRepository
	media          domain.MediaStorage
	regions        map[string]struct{}
	atomicSwaps    bool
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSlotService returns a SlotService over the given store. An empty regions list
// accepts any non-empty region id. media may be nil, in which case deleted slots
// keep their images in storage.
func NewSlotService(slotRepo domain.SlotRepository,
	media domain.MediaStorage,
	regions []string,
	atomicSwaps bool,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SlotService {
	allowed := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if r = strings.TrimSpace(r); r != "" {
			allowed[r] = struct{}{}
		}
	}
	return &slotService{
		slotRepo:       slotRepo,
		media:          media,
		regions:        allowed,
		atomicSwaps:    atomicSwaps,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *slotService) checkScope(scope domain.Scope) error {
	if _, err := domain.ParseCollection(string(scope.Collection)); err != nil {
		return fmt.Errorf("collection %q: %w", scope.Collection, err)
	}
	if !scope.Collection.RegionScoped() {
		return nil
	}
	if scope.RegionID == "" {
		return fmt.Errorf("region is required for %s: %w", scope.Collection, domain.ErrInvalidInput)
	}
	if len(s.regions) == 0 {
		return nil
	}
	if _, ok := s.regions[scope.RegionID]; !ok {
		return fmt.Errorf("region %q: %w", scope.RegionID, domain.ErrUnknownRegion)
	}
	return nil
}

// openRegistry validates scope and returns a loaded registry for it.
func (s *slotService) openRegistry(ctx context.Context, scope domain.Scope) (*SlotRegistry, error) {
	scope = domain.NewScope(scope.Collection, scope.RegionID)
	if err := s.checkScope(scope); err != nil {
		return nil, err
	}
	reg := NewSlotRegistry(s.slotRepo, scope, s.logger, WithAtomicSwaps(s.atomicSwaps))
	if err := reg.Load(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *slotService) GetSnapshot(ctx context.Context, scope domain.Scope) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	return reg.Snapshot(), nil
}

func (s *slotService) ListContent(ctx context.Context, view domain.ContentView) ([]*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, domain.NewScope(domain.CollectionContent, ""))
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Slot, 0, view.Limit())
	for n := 1; n <= view.Limit(); n++ {
		if slot := reg.At(n); slot != nil {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *slotService) SaveSlot(ctx context.Context, scope domain.Scope, slotNumber int, payload domain.SlotPayload) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	if err := reg.Save(ctx, slotNumber, payload); err != nil {
		return reg.Snapshot(), err
	}
	return reg.Snapshot(), nil
}

func (s *slotService) DeleteSlot(ctx context.Context, scope domain.Scope, slotNumber int) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	removed := reg.At(slotNumber)
	if err := reg.Delete(ctx, slotNumber); err != nil {
		return reg.Snapshot(), err
	}
	if removed != nil {
		s.removeImage(ctx, removed)
	}
	return reg.Snapshot(), nil
}

// removeImage deletes the slot's image when it lives in our media storage.
// Failures are logged and do not fail the delete.
func (s *slotService) removeImage(ctx context.Context, slot *domain.Slot) {
	if s.media == nil || slot.Payload.ImageURL == "" {
		return
	}
	path, ok := s.media.PathFromURL(slot.Payload.ImageURL)
	if !ok {
		return
	}
	if err := s.media.Remove(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "failed to remove slot image", "path", path, "slot_id", slot.ID, "err", err)
	}
}

func (s *slotService) MoveSlot(ctx context.Context, scope domain.Scope, slotNumber int, dir domain.Direction) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	err = reg.MoveAdjacent(ctx, slotNumber, dir)
	return reg.Snapshot(), err
}

func (s *slotService) SwapSlots(ctx context.Context, scope domain.Scope, a, b int) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	err = reg.SwapNonAdjacent(ctx, a, b)
	return reg.Snapshot(), err
}

func (s *slotService) RestoreAnomaly(ctx context.Context, scope domain.Scope, id string, slotNumber int) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	err = reg.RestoreAnomaly(ctx, id, slotNumber)
	return reg.Snapshot(), err
}

func (s *slotService) DeleteAnomaly(ctx context.Context, scope domain.Scope, id string) (domain.SlotSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.openRegistry(ctx, scope)
	if err != nil {
		return domain.SlotSnapshot{}, err
	}
	removed := reg.Anomaly(id)
	if err := reg.DeleteAnomaly(ctx, id); err != nil {
		return reg.Snapshot(), err
	}
	s.removeImage(ctx, removed)
	return reg.Snapshot(), nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"networkingbude/internal/domain"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var errConnReset = errors.New("connection reset by peer")

// fakeSlotRepo is an in-memory SlotRepository that enforces the
// (collection, region, slot_number) unique key like the real table.
type fakeSlotRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Slot
	nextID int

	listErr   error
	getErr    error
	insertErr error
	deleteErr error
	// failMoveOn makes the n-th UpdateSlotNumber call (1-based) return moveErr.
	failMoveOn int
	moveErr    error
	moveCalls  int

	writes []string
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{byID: make(map[string]*domain.Slot), nextID: 1}
}

// seed inserts a row directly, bypassing failure injection.
func (f *fakeSlotRepo) seed(scope domain.Scope, n int, title string) *domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.NewSlot(scope, n, domain.SlotPayload{Title: title, Tags: []string{}}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s.ID = fmt.Sprintf("slot-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = s
	return s
}

func (f *fakeSlotRepo) conflict(s *domain.Slot, number int) bool {
	for id, other := range f.byID {
		if id != s.ID && other.Collection == s.Collection && other.RegionID == s.RegionID && other.SlotNumber == number {
			return true
		}
	}
	return false
}

func clone(s *domain.Slot) *domain.Slot {
	c := *s
	return &c
}

func (f *fakeSlotRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, &domain.StoreError{Op: "select", Err: f.listErr}
	}
	out := make([]*domain.Slot, 0)
	for _, s := range f.byID {
		if s.Collection == scope.Collection && s.RegionID == scope.RegionID {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, nil
}

func (f *fakeSlotRepo) GetByNumber(ctx context.Context, scope domain.Scope, n int) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, &domain.StoreError{Op: "select", Err: f.getErr}
	}
	for _, s := range f.byID {
		if s.Collection == scope.Collection && s.RegionID == scope.RegionID && s.SlotNumber == n {
			return clone(s), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSlotRepo) Insert(ctx context.Context, s *domain.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, fmt.Sprintf("insert %d", s.SlotNumber))
	if f.insertErr != nil {
		return &domain.StoreError{Op: "insert", Err: f.insertErr}
	}
	if f.conflict(s, s.SlotNumber) {
		return &domain.StoreError{Op: "insert", Conflict: true, Err: errors.New("duplicate key")}
	}
	s.ID = fmt.Sprintf("slot-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = clone(s)
	return nil
}

func (f *fakeSlotRepo) UpdatePayload(ctx context.Context, id string, p domain.SlotPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "update payload "+id)
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Payload = p
	return nil
}

func (f *fakeSlotRepo) UpdateSlotNumber(ctx context.Context, id string, n int, isFeatured bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moveCalls++
	f.writes = append(f.writes, fmt.Sprintf("move %s %d", id, n))
	if f.failMoveOn > 0 && f.moveCalls == f.failMoveOn {
		return &domain.StoreError{Op: "update", Err: f.moveErr}
	}
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if f.conflict(s, n) {
		return &domain.StoreError{Op: "update", Conflict: true, Err: errors.New("duplicate key")}
	}
	s.SlotNumber = n
	s.IsFeatured = isFeatured
	return nil
}

func (f *fakeSlotRepo) DeleteByNumber(ctx context.Context, scope domain.Scope, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, fmt.Sprintf("delete %d", n))
	if f.deleteErr != nil {
		return &domain.StoreError{Op: "delete", Err: f.deleteErr}
	}
	for id, s := range f.byID {
		if s.Collection == scope.Collection && s.RegionID == scope.RegionID && s.SlotNumber == n {
			delete(f.byID, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSlotRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "delete "+id)
	if f.deleteErr != nil {
		return &domain.StoreError{Op: "delete", Err: f.deleteErr}
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// numberOf returns the slot number currently stored for id, or 0 if absent.
func (f *fakeSlotRepo) numberOf(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		return s.SlotNumber
	}
	return 0
}

// fakeSwapperRepo adds an all-or-nothing SwapSlotNumbers to fakeSlotRepo.
type fakeSwapperRepo struct {
	*fakeSlotRepo
	swapErr   error
	swapCalls int
}

func (f *fakeSwapperRepo) SwapSlotNumbers(ctx context.Context, scope domain.Scope, a, b *domain.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swapCalls++
	if f.swapErr != nil {
		return &domain.StoreError{Op: "commit", Err: f.swapErr}
	}
	ra, okA := f.byID[a.ID]
	rb, okB := f.byID[b.ID]
	if !okA || !okB {
		return domain.ErrNotFound
	}
	ra.SlotNumber, rb.SlotNumber = rb.SlotNumber, ra.SlotNumber
	ra.IsFeatured = scope.Collection.IsFeatured(ra.SlotNumber)
	rb.IsFeatured = scope.Collection.IsFeatured(rb.SlotNumber)
	return nil
}

// fakeMediaStorage records uploads and removals.
type fakeMediaStorage struct {
	baseURL   string
	uploaded  map[string][]byte
	removed   []string
	uploadErr error
	removeErr error
}

func newFakeMediaStorage() *fakeMediaStorage {
	return &fakeMediaStorage{baseURL: "https://cdn.example.com/", uploaded: make(map[string][]byte)}
}

func (f *fakeMediaStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded[path] = data
	return f.baseURL + path, nil
}

func (f *fakeMediaStorage) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	return f.removeErr
}

func (f *fakeMediaStorage) PathFromURL(u string) (string, bool) {
	if len(u) > len(f.baseURL) && u[:len(f.baseURL)] == f.baseURL {
		return u[len(f.baseURL):], true
	}
	return "", false
}

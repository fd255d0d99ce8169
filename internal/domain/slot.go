package domain

import (
	"context"
	"time"
)

// Collection identifies a bounded, ordered slot collection.
type Collection string

const (
	CollectionEvents  Collection = "events"
	CollectionContent Collection = "content"
)

// SentinelSlotNumber is the out-of-range slot number a record is parked on while
// its old position is handed to another record during a swap.
const SentinelSlotNumber = 99

const (
	maxEventSlots      = 7
	maxContentSlots    = 10
	featuredEventSlots = 4
	dashboardSlots     = 3
)

// ParseCollection returns the Collection named by s, or ErrInvalidInput.
func ParseCollection(s string) (Collection, error) {
	switch Collection(s) {
	case CollectionEvents, CollectionContent:
		return Collection(s), nil
	}
	return "", ErrInvalidInput
}

// MaxSlots returns the highest valid slot number for the collection.
func (c Collection) MaxSlots() int {
	if c == CollectionEvents {
		return maxEventSlots
	}
	return maxContentSlots
}

// RegionScoped reports whether slot numbers are unique per region rather than globally.
func (c Collection) RegionScoped() bool {
	return c == CollectionEvents
}

// InRange reports whether n is a valid slot number for the collection.
func (c Collection) InRange(n int) bool {
	return n >= 1 && n <= c.MaxSlots()
}

// IsFeatured derives the featured flag of an event slot from its number.
// Content slots are never featured.
func (c Collection) IsFeatured(slotNumber int) bool {
	return c == CollectionEvents && slotNumber >= 1 && slotNumber <= featuredEventSlots
}

// ContentView selects which content slots a reader sees.
type ContentView string

const (
	ContentViewDashboard ContentView = "dashboard"
	ContentViewInsights  ContentView = "insights"
)

// Limit returns the number of leading content slots the view surfaces.
func (v ContentView) Limit() int {
	if v == ContentViewDashboard {
		return dashboardSlots
	}
	return maxContentSlots
}

// Scope is the (collection, region) pair within which slot numbers are unique.
// Content slots are not region-scoped and always carry an empty RegionID.
type Scope struct {
	Collection Collection `json:"collection"`
	RegionID   string     `json:"region_id"`
}

// NewScope builds a scope, dropping the region for collections that are not region-scoped.
func NewScope(c Collection, regionID string) Scope {
	if !c.RegionScoped() {
		regionID = ""
	}
	return Scope{Collection: c, RegionID: regionID}
}

func (s Scope) String() string {
	if s.RegionID == "" {
		return string(s.Collection)
	}
	return string(s.Collection) + "/" + s.RegionID
}

// SlotPayload holds the descriptive fields of a slot. Which fields are required
// depends on the collection; see PayloadRules.
// swagger:model SlotPayload
type SlotPayload struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	Location     string     `json:"location"`
	Organization string     `json:"organization"`
	ImageURL     string     `json:"image_url"`
	ExternalURL  string     `json:"external_url"`
	Tags         []string   `json:"tags"`
}

// PayloadRules returns the validator rules applied to SlotPayload fields for the
// collection, keyed by struct field name. Fields without a rule are not checked.
func (c Collection) PayloadRules() map[string]string {
	if c == CollectionEvents {
		return map[string]string{
			"Title":       "required,max=200",
			"StartsAt":    "required",
			"Location":    "required",
			"ImageURL":    "omitempty,url",
			"ExternalURL": "omitempty,url",
		}
	}
	return map[string]string{
		"Title":       "required,max=200",
		"Description": "required",
		"ImageURL":    "omitempty,url",
		"ExternalURL": "required,url",
	}
}

// Slot is one persisted record at a numbered position of a collection.
// swagger:model Slot
type Slot struct {
	ID         string      `json:"id"`
	Collection Collection  `json:"collection"`
	RegionID   string      `json:"region_id,omitempty"`
	SlotNumber int         `json:"slot_number"`
	IsFeatured bool        `json:"is_featured"`
	Payload    SlotPayload `json:"payload"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewSlot returns a new Slot at the given position of scope. ID is set by the repository on insert.
func NewSlot(scope Scope, slotNumber int, payload SlotPayload, now time.Time) *Slot {
	return &Slot{
		Collection: scope.Collection,
		RegionID:   scope.RegionID,
		SlotNumber: slotNumber,
		IsFeatured: scope.Collection.IsFeatured(slotNumber),
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Scope returns the scope the slot belongs to.
func (s *Slot) Scope() Scope {
	return NewScope(s.Collection, s.RegionID)
}

// SlotRepository is the row-oriented store holding slots.
type SlotRepository interface {
	// ListByScope returns every row of the scope ordered by slot_number, including
	// rows whose number falls outside the collection's range.
	ListByScope(ctx context.Context, scope Scope) ([]*Slot, error)
	GetByNumber(ctx context.Context, scope Scope, slotNumber int) (*Slot, error)
	Insert(ctx context.Context, slot *Slot) error
	UpdatePayload(ctx context.Context, id string, payload SlotPayload) error
	// UpdateSlotNumber moves the row with the given id and stores the featured flag alongside.
	UpdateSlotNumber(ctx context.Context, id string, slotNumber int, isFeatured bool) error
	DeleteByNumber(ctx context.Context, scope Scope, slotNumber int) error
	DeleteByID(ctx context.Context, id string) error
}

// SlotNumberSwapper is implemented by stores that can exchange the positions of two
// rows atomically.
type SlotNumberSwapper interface {
	SwapSlotNumbers(ctx context.Context, scope Scope, a, b *Slot) error
}

// SlotSnapshot is an ordered view of a scope. Positions[i] holds slot number i+1
// and is nil when that position is empty.
// swagger:model SlotSnapshot
type SlotSnapshot struct {
	Scope     Scope   `json:"scope"`
	Positions []*Slot `json:"positions"`
	// Anomalies are rows whose slot number is outside the valid range, typically
	// left on the sentinel by an interrupted swap.
	Anomalies []*Slot `json:"anomalies"`
}

// Occupied returns the non-empty positions in ascending order.
func (s SlotSnapshot) Occupied() []*Slot {
	out := make([]*Slot, 0, len(s.Positions))
	for _, slot := range s.Positions {
		if slot != nil {
			out = append(out, slot)
		}
	}
	return out
}

// Direction of an adjacent move.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Offset returns the slot-number delta of the direction.
func (d Direction) Offset() int {
	if d == DirectionUp {
		return -1
	}
	return 1
}

// SlotService defines the admin operations over slot collections.
type SlotService interface {
	GetSnapshot(ctx context.Context, scope Scope) (SlotSnapshot, error)
	ListContent(ctx context.Context, view ContentView) ([]*Slot, error)
	SaveSlot(ctx context.Context, scope Scope, slotNumber int, payload SlotPayload) (SlotSnapshot, error)
	DeleteSlot(ctx context.Context, scope Scope, slotNumber int) (SlotSnapshot, error)
	MoveSlot(ctx context.Context, scope Scope, slotNumber int, dir Direction) (SlotSnapshot, error)
	SwapSlots(ctx context.Context, scope Scope, a, b int) (SlotSnapshot, error)
	// RestoreAnomaly moves an out-of-range row back to an empty position.
	RestoreAnomaly(ctx context.Context, scope Scope, id string, slotNumber int) (SlotSnapshot, error)
	DeleteAnomaly(ctx context.Context, scope Scope, id string) (SlotSnapshot, error)
}

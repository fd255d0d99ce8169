package postgres

import (
	"context"
	"database/sql"
	"errors"

	"networkingbude/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const slotColumns = `id, collection, region_id, slot_number, is_featured, title, description, starts_at, ends_at,
		location, organization, image_url, external_url, tags, created_at, updated_at`

type slotRepository struct {
	DB *sql.DB
}

// NewSlotRepository returns a domain.SlotRepository implemented with Postgres.
// The returned value also implements domain.SlotNumberSwapper.
func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	s := &domain.Slot{}
	var collection string
	var startsAt, endsAt sql.NullTime
	var tags pq.StringArray
	err := row.Scan(
		&s.ID, &collection, &s.RegionID, &s.SlotNumber, &s.IsFeatured,
		&s.Payload.Title, &s.Payload.Description, &startsAt, &endsAt,
		&s.Payload.Location, &s.Payload.Organization, &s.Payload.ImageURL, &s.Payload.ExternalURL,
		&tags, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Collection = domain.Collection(collection)
	if startsAt.Valid {
		s.Payload.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		s.Payload.EndsAt = &endsAt.Time
	}
	s.Payload.Tags = []string(tags)
	if s.Payload.Tags == nil {
		s.Payload.Tags = []string{}
	}
	return s, nil
}

// storeErr wraps err as a *domain.StoreError, flagging unique-key violations.
func storeErr(op string, err error) error {
	var perr *pq.Error
	conflict := errors.As(err, &perr) && perr.Code == uniqueViolation
	return &domain.StoreError{Op: op, Conflict: conflict, Err: err}
}

func (r *slotRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE collection = $1 AND region_id = $2
		ORDER BY slot_number
	`
	rows, err := r.DB.QueryContext(ctx, query, string(scope.Collection), scope.RegionID)
	if err != nil {
		return nil, storeErr("select", err)
	}
	defer rows.Close()
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, storeErr("select", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select", err)
	}
	return slots, nil
}

func (r *slotRepository) GetByNumber(ctx context.Context, scope domain.Scope, slotNumber int) (*domain.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE collection = $1 AND region_id = $2 AND slot_number = $3
	`
	s, err := scanSlot(r.DB.QueryRowContext(ctx, query, string(scope.Collection), scope.RegionID, slotNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("select", err)
	}
	return s, nil
}

func (r *slotRepository) Insert(ctx context.Context, s *domain.Slot) error {
	query := `
		INSERT INTO slots (collection, region_id, slot_number, is_featured, title, description, starts_at, ends_at,
			location, organization, image_url, external_url, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	p := s.Payload
	err := r.DB.QueryRowContext(ctx, query,
		string(s.Collection), s.RegionID, s.SlotNumber, s.IsFeatured, p.Title, p.Description, p.StartsAt, p.EndsAt,
		p.Location, p.Organization, p.ImageURL, p.ExternalURL, pq.Array(p.Tags), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return storeErr("insert", err)
	}
	return nil
}

func (r *slotRepository) UpdatePayload(ctx context.Context, id string, p domain.SlotPayload) error {
	query := `
		UPDATE slots
		SET title = $2, description = $3, starts_at = $4, ends_at = $5, location = $6, organization = $7,
			image_url = $8, external_url = $9, tags = $10, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, p.Title, p.Description, p.StartsAt, p.EndsAt,
		p.Location, p.Organization, p.ImageURL, p.ExternalURL, pq.Array(p.Tags))
	if err != nil {
		return storeErr("update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slotRepository) UpdateSlotNumber(ctx context.Context, id string, slotNumber int, isFeatured bool) error {
	return updateSlotNumber(ctx, r.DB, id, slotNumber, isFeatured)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateSlotNumber(ctx context.Context, db execer, id string, slotNumber int, isFeatured bool) error {
	result, err := db.ExecContext(ctx,
		`UPDATE slots SET slot_number = $2, is_featured = $3, updated_at = NOW() WHERE id = $1`,
		id, slotNumber, isFeatured)
	if err != nil {
		return storeErr("update", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slotRepository) DeleteByNumber(ctx context.Context, scope domain.Scope, slotNumber int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM slots WHERE collection = $1 AND region_id = $2 AND slot_number = $3`,
		string(scope.Collection), scope.RegionID, slotNumber)
	if err != nil {
		return storeErr("delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slotRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SwapSlotNumbers exchanges the positions of a and b inside one transaction. The
// sentinel step still runs because the unique index is checked per statement, but
// a failure rolls every step back.
func (r *slotRepository) SwapSlotNumbers(ctx context.Context, scope domain.Scope, a, b *domain.Slot) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin", err)
	}
	steps := []struct {
		id     string
		number int
	}{
		{a.ID, domain.SentinelSlotNumber},
		{b.ID, a.SlotNumber},
		{a.ID, b.SlotNumber},
	}
	for _, st := range steps {
		if err := updateSlotNumber(ctx, tx, st.id, st.number, scope.Collection.IsFeatured(st.number)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr("commit", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"networkingbude/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a domain.ProfileRepository backed by the profiles table.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT is_admin
		FROM profiles
		WHERE id = $1
	`
	var isAdmin sql.NullBool
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return isAdmin.Valid && isAdmin.Bool, nil
}

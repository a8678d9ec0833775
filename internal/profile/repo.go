package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Get returns the profile for a user. An unknown user is not an error: it
// yields an empty profile so callers degrade to unpersonalized prompts.
func (r *PostgresRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	p := &Profile{UserID: userID}
	query := `SELECT majors, year FROM profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(pq.Array(&p.Majors), &p.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, majors, year, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET majors = $2, year = $3, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, pq.Array(p.Majors), p.Year)
	return err
}

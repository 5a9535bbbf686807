package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(dbtx db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: dbtx}
}

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *SQLiteProfileRepo) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM profiles WHERE name = ?`, name)
	return scanProfile(row)
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdAt, "profile.created_at"); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt, "profile.created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

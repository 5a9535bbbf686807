package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo.
func NewSQLiteSubjectRepo(dbtx db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: dbtx}
}

const subjectColumns = `id, profile_id, name, color, professor, classroom, code, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (` + subjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProfileID, s.Name, s.Color, s.Professor, s.Classroom, s.Code,
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	return scanSubjectRow(row)
}

func (r *SQLiteSubjectRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE profile_id = ? ORDER BY name`, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows.Scan)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	query := `UPDATE subjects
		SET name = ?, color = ?, professor = ?, classroom = ?, code = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name, s.Color, s.Professor, s.Classroom, s.Code,
		s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return requireAffected(res, "subject")
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return nil
}

func scanSubjectRow(row *sql.Row) (*domain.Subject, error) {
	s, err := scanSubject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subject: %w", ErrNotFound)
	}
	return s, err
}

func scanSubject(scan func(...any) error) (*domain.Subject, error) {
	var s domain.Subject
	var createdAt, updatedAt string

	err := scan(&s.ID, &s.ProfileID, &s.Name, &s.Color, &s.Professor,
		&s.Classroom, &s.Code, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}

	if s.CreatedAt, err = parseTime(createdAt, "subject.created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt, "subject.updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}

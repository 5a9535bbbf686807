package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

// SQLiteExamRepo implements ExamRepo using a SQLite database.
type SQLiteExamRepo struct {
	db db.DBTX
}

// NewSQLiteExamRepo creates a new SQLiteExamRepo.
func NewSQLiteExamRepo(dbtx db.DBTX) *SQLiteExamRepo {
	return &SQLiteExamRepo{db: dbtx}
}

const examColumns = `id, subject_id, title, exam_date, duration_min, weight_pct, status, created_at, updated_at`

func (r *SQLiteExamRepo) Create(ctx context.Context, e *domain.Exam) error {
	query := `INSERT INTO exams (` + examColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.SubjectID, e.Title, e.ExamDate.Format(time.RFC3339),
		e.DurationMin, e.WeightPct, string(e.Status),
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting exam: %w", err)
	}
	return nil
}

func (r *SQLiteExamRepo) GetByID(ctx context.Context, id string) (*domain.Exam, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = ?`, id)
	e, err := scanExam(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exam: %w", ErrNotFound)
	}
	return e, err
}

func (r *SQLiteExamRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Exam, error) {
	return r.list(ctx,
		`SELECT `+examColumns+` FROM exams WHERE subject_id = ? ORDER BY exam_date`, subjectID)
}

func (r *SQLiteExamRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.Exam, error) {
	query := `SELECT e.id, e.subject_id, e.title, e.exam_date, e.duration_min,
			e.weight_pct, e.status, e.created_at, e.updated_at
		FROM exams e
		JOIN subjects s ON e.subject_id = s.id
		WHERE s.profile_id = ?
		ORDER BY e.exam_date`
	return r.list(ctx, query, profileID)
}

func (r *SQLiteExamRepo) Update(ctx context.Context, e *domain.Exam) error {
	query := `UPDATE exams
		SET title = ?, exam_date = ?, duration_min = ?, weight_pct = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.ExamDate.Format(time.RFC3339), e.DurationMin, e.WeightPct,
		string(e.Status), e.UpdatedAt.Format(time.RFC3339), e.ID)
	if err != nil {
		return fmt.Errorf("updating exam: %w", err)
	}
	return requireAffected(res, "exam")
}

func (r *SQLiteExamRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting exam: %w", err)
	}
	return nil
}

func (r *SQLiteExamRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Exam, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exams: %w", err)
	}
	defer rows.Close()

	var exams []*domain.Exam
	for rows.Next() {
		e, err := scanExam(rows.Scan)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exams: %w", err)
	}
	return exams, nil
}

func scanExam(scan func(...any) error) (*domain.Exam, error) {
	var e domain.Exam
	var examDate, createdAt, updatedAt, status string

	err := scan(&e.ID, &e.SubjectID, &e.Title, &examDate, &e.DurationMin,
		&e.WeightPct, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning exam: %w", err)
	}

	e.Status = domain.ExamStatus(status)
	if e.ExamDate, err = parseTime(examDate, "exam.exam_date"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt, "exam.created_at"); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt, "exam.updated_at"); err != nil {
		return nil, err
	}
	return &e, nil
}

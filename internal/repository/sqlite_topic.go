package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

// SQLiteTopicRepo implements TopicRepo using a SQLite database.
type SQLiteTopicRepo struct {
	db db.DBTX
}

// NewSQLiteTopicRepo creates a new SQLiteTopicRepo.
func NewSQLiteTopicRepo(dbtx db.DBTX) *SQLiteTopicRepo {
	return &SQLiteTopicRepo{db: dbtx}
}

const topicColumns = `id, exam_id, title, estimated_pomodoros, completed_pomodoros, status, order_index, created_at, updated_at`

func (r *SQLiteTopicRepo) Create(ctx context.Context, t *domain.ExamTopic) error {
	query := `INSERT INTO exam_topics (` + topicColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ExamID, t.Title, t.EstimatedPomodoros, t.CompletedPomodoros,
		string(t.Status), t.OrderIndex,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting exam topic: %w", err)
	}
	return nil
}

func (r *SQLiteTopicRepo) GetByID(ctx context.Context, id string) (*domain.ExamTopic, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+topicColumns+` FROM exam_topics WHERE id = ?`, id)
	t, err := scanTopic(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exam topic: %w", ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTopicRepo) ListByExam(ctx context.Context, examID string) ([]*domain.ExamTopic, error) {
	return r.list(ctx,
		`SELECT `+topicColumns+` FROM exam_topics WHERE exam_id = ? ORDER BY order_index, created_at`, examID)
}

func (r *SQLiteTopicRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.ExamTopic, error) {
	query := `SELECT t.id, t.exam_id, t.title, t.estimated_pomodoros, t.completed_pomodoros,
			t.status, t.order_index, t.created_at, t.updated_at
		FROM exam_topics t
		JOIN exams e ON t.exam_id = e.id
		JOIN subjects s ON e.subject_id = s.id
		WHERE s.profile_id = ?
		ORDER BY e.exam_date, t.order_index`
	return r.list(ctx, query, profileID)
}

func (r *SQLiteTopicRepo) Update(ctx context.Context, t *domain.ExamTopic) error {
	query := `UPDATE exam_topics
		SET title = ?, estimated_pomodoros = ?, completed_pomodoros = ?, status = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.EstimatedPomodoros, t.CompletedPomodoros, string(t.Status),
		t.OrderIndex, t.UpdatedAt.Format(time.RFC3339), t.ID)
	if err != nil {
		return fmt.Errorf("updating exam topic: %w", err)
	}
	return requireAffected(res, "exam topic")
}

func (r *SQLiteTopicRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exam_topics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting exam topic: %w", err)
	}
	return nil
}

func (r *SQLiteTopicRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ExamTopic, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exam topics: %w", err)
	}
	defer rows.Close()

	var topics []*domain.ExamTopic
	for rows.Next() {
		t, err := scanTopic(rows.Scan)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exam topics: %w", err)
	}
	return topics, nil
}

func scanTopic(scan func(...any) error) (*domain.ExamTopic, error) {
	var t domain.ExamTopic
	var status, createdAt, updatedAt string

	err := scan(&t.ID, &t.ExamID, &t.Title, &t.EstimatedPomodoros,
		&t.CompletedPomodoros, &status, &t.OrderIndex, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning exam topic: %w", err)
	}

	t.Status = domain.TopicStatus(status)
	if t.CreatedAt, err = parseTime(createdAt, "exam_topic.created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt, "exam_topic.updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}

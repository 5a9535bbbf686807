package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
)

const noteColumns = `id, profile_id, subject_id, topic_id, title, body, created_at, updated_at`

// SQLiteNoteRepo implements NoteRepo using a SQLite database.
type SQLiteNoteRepo struct {
	db db.DBTX
}

// NewSQLiteNoteRepo creates a new SQLiteNoteRepo.
func NewSQLiteNoteRepo(dbtx db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: dbtx}
}

func (r *SQLiteNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.ProfileID, n.SubjectID, n.TopicID, n.Title, n.Body,
		n.CreatedAt.Format(time.RFC3339), n.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

func (r *SQLiteNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note: %w", ErrNotFound)
	}
	return n, err
}

func (r *SQLiteNoteRepo) GetByTitle(ctx context.Context, profileID, title string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE profile_id = ? AND title = ?`,
		profileID, title)
	n, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %q: %w", title, ErrNotFound)
	}
	return n, err
}

func (r *SQLiteNoteRepo) ListByProfile(ctx context.Context, profileID string) ([]*domain.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE profile_id = ? ORDER BY updated_at DESC`,
		profileID)
}

func (r *SQLiteNoteRepo) Update(ctx context.Context, n *domain.Note) error {
	query := `UPDATE notes
		SET subject_id = ?, topic_id = ?, title = ?, body = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		n.SubjectID, n.TopicID, n.Title, n.Body,
		n.UpdatedAt.Format(time.RFC3339), n.ID)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return requireAffected(res, "note")
}

func (r *SQLiteNoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// ReplaceLinks swaps the note's outgoing link set wholesale. Links are
// re-extracted from the body on every save, so partial updates never happen.
func (r *SQLiteNoteRepo) ReplaceLinks(ctx context.Context, sourceNoteID string, links []domain.NoteLink) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM note_links WHERE source_note_id = ?`, sourceNoteID); err != nil {
		return fmt.Errorf("clearing note links: %w", err)
	}
	for _, l := range links {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_links (source_note_id, target_title, target_note_id)
			 VALUES (?, ?, ?)`,
			sourceNoteID, l.TargetTitle, l.TargetNoteID)
		if err != nil {
			return fmt.Errorf("inserting note link to %q: %w", l.TargetTitle, err)
		}
	}
	return nil
}

func (r *SQLiteNoteRepo) ListLinks(ctx context.Context, sourceNoteID string) ([]domain.NoteLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT source_note_id, target_title, target_note_id
		 FROM note_links WHERE source_note_id = ?
		 ORDER BY target_title`, sourceNoteID)
	if err != nil {
		return nil, fmt.Errorf("listing note links: %w", err)
	}
	defer rows.Close()

	var links []domain.NoteLink
	for rows.Next() {
		var l domain.NoteLink
		if err := rows.Scan(&l.SourceNoteID, &l.TargetTitle, &l.TargetNoteID); err != nil {
			return nil, fmt.Errorf("scanning note link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note links: %w", err)
	}
	return links, nil
}

// ListBacklinks returns the profile's notes whose bodies link to the given
// title.
func (r *SQLiteNoteRepo) ListBacklinks(ctx context.Context, profileID, title string) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumnsPrefixed + `
		FROM notes n
		JOIN note_links l ON l.source_note_id = n.id
		WHERE n.profile_id = ? AND l.target_title = ?
		ORDER BY n.title`
	return r.list(ctx, query, profileID, title)
}

const noteColumnsPrefixed = `n.id, n.profile_id, n.subject_id, n.topic_id, n.title, n.body, n.created_at, n.updated_at`

func (r *SQLiteNoteRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

func scanNote(scan func(...any) error) (*domain.Note, error) {
	var n domain.Note
	var createdAt, updatedAt string

	err := scan(&n.ID, &n.ProfileID, &n.SubjectID, &n.TopicID, &n.Title, &n.Body,
		&createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning note: %w", err)
	}

	if n.CreatedAt, err = parseTime(createdAt, "note.created_at"); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt, "note.updated_at"); err != nil {
		return nil, err
	}
	return &n, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/google/uuid"
)

type noteService struct {
	notes repository.NoteRepo
	uow   db.UnitOfWork
	clock Clock
}

func NewNoteService(notes repository.NoteRepo, uow db.UnitOfWork) NoteService {
	return &noteService{notes: notes, uow: uow, clock: UTCNow}
}

func (s *noteService) Create(ctx context.Context, n *domain.Note) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return fmt.Errorf("note title cannot be empty")
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := s.clock()
	n.CreatedAt = now
	n.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		if err := txNotes.Create(ctx, n); err != nil {
			return err
		}
		return s.syncLinks(ctx, txNotes, n)
	})
}

func (s *noteService) Get(ctx context.Context, id string) (*domain.Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *noteService) GetByTitle(ctx context.Context, profileID, title string) (*domain.Note, error) {
	return s.notes.GetByTitle(ctx, profileID, title)
}

func (s *noteService) List(ctx context.Context, profileID string) ([]*domain.Note, error) {
	return s.notes.ListByProfile(ctx, profileID)
}

func (s *noteService) Update(ctx context.Context, n *domain.Note) error {
	n.UpdatedAt = s.clock()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		if err := txNotes.Update(ctx, n); err != nil {
			return err
		}
		return s.syncLinks(ctx, txNotes, n)
	})
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}

func (s *noteService) Links(ctx context.Context, noteID string) ([]domain.NoteLink, error) {
	return s.notes.ListLinks(ctx, noteID)
}

func (s *noteService) Backlinks(ctx context.Context, profileID, title string) ([]*domain.Note, error) {
	return s.notes.ListBacklinks(ctx, profileID, title)
}

// syncLinks re-extracts [[Title]] references from the body and replaces the
// note's link rows. Targets are resolved to note IDs when a note with that
// title already exists; unresolved targets keep an empty target ID.
func (s *noteService) syncLinks(ctx context.Context, txNotes repository.NoteRepo, n *domain.Note) error {
	titles := domain.ExtractLinkTitles(n.Body)
	links := make([]domain.NoteLink, 0, len(titles))
	for _, title := range titles {
		link := domain.NoteLink{SourceNoteID: n.ID, TargetTitle: title}
		target, err := txNotes.GetByTitle(ctx, n.ProfileID, title)
		switch {
		case err == nil:
			link.TargetNoteID = target.ID
		case errors.Is(err, repository.ErrNotFound):
			// Dangling link: target note may be created later.
		default:
			return err
		}
		links = append(links, link)
	}
	return txNotes.ReplaceLinks(ctx, n.ID, links)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estudia-cli/estudia/internal/db"
	"github.com/estudia-cli/estudia/internal/importer"
	"github.com/estudia-cli/estudia/internal/repository"
)

type importService struct {
	profiles repository.ProfileRepo
	uow      db.UnitOfWork
	clock    Clock
}

func NewImportService(profiles repository.ProfileRepo, uow db.UnitOfWork) ImportService {
	return &importService{profiles: profiles, uow: uow, clock: UTCNow}
}

func (s *importService) ImportFile(ctx context.Context, profileID, path string) (*importer.Bundle, error) {
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid import file: %w", errors.Join(errs...))
	}

	bundle, err := importer.Convert(schema, profileID, s.clock())
	if err != nil {
		return nil, err
	}

	// The whole file lands atomically: a failure on any row leaves the
	// catalog untouched.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		exams := repository.NewSQLiteExamRepo(tx)
		topics := repository.NewSQLiteTopicRepo(tx)
		schedules := repository.NewSQLiteScheduleRepo(tx)

		for _, sub := range bundle.Subjects {
			if err := subjects.Create(ctx, sub); err != nil {
				return fmt.Errorf("creating subject %q: %w", sub.Name, err)
			}
		}
		for _, exam := range bundle.Exams {
			if err := exams.Create(ctx, exam); err != nil {
				return fmt.Errorf("creating exam %q: %w", exam.Title, err)
			}
		}
		for _, topic := range bundle.Topics {
			if err := topics.Create(ctx, topic); err != nil {
				return fmt.Errorf("creating topic %q: %w", topic.Title, err)
			}
		}
		for _, block := range bundle.Schedules {
			if err := schedules.Create(ctx, block); err != nil {
				return fmt.Errorf("creating schedule block: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bundle, nil
}

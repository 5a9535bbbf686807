package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/repository"
	"github.com/google/uuid"
)

type profileService struct {
	profiles repository.ProfileRepo
	clock    Clock
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles, clock: UTCNow}
}

func (s *profileService) Create(ctx context.Context, name string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("profile name cannot be empty")
	}
	p := &domain.Profile{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: s.clock(),
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	return s.profiles.GetByName(ctx, name)
}

func (s *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, id)
}

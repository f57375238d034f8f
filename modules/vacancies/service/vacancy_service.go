package service

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vacancies/ports"
)

// VacancyService exposes read access to vacancies for the thin HTTP
// surface (§6); the ingestion and matching pipelines talk to
// ports.VacancyRepository directly since they need transactional control
// the service layer would only get in the way of.
type VacancyService struct {
	repo ports.VacancyRepository
}

// NewVacancyService creates a new vacancy service.
func NewVacancyService(repo ports.VacancyRepository) *VacancyService {
	return &VacancyService{repo: repo}
}

// GetByID retrieves a vacancy by id.
func (s *VacancyService) GetByID(ctx context.Context, vacancyID string) (*model.VacancyDTO, error) {
	v, err := s.repo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	return v.ToDTO(), nil
}

// List retrieves open vacancies with pagination.
func (s *VacancyService) List(ctx context.Context, limit, offset int) ([]*model.VacancyDTO, int, error) {
	return s.repo.List(ctx, limit, offset)
}

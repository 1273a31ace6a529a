package services

import (
	"context"

	"github.com/okothvientrevor/ALOVAZE/internal/models"
)

type CompanyStore interface {
	ListAll(ctx context.Context) ([]models.Company, error)
}

type CompanyService struct {
	companies CompanyStore
}

func NewCompanyService(companies CompanyStore) *CompanyService {
	return &CompanyService{companies: companies}
}

func (s *CompanyService) ListAll(ctx context.Context) ([]models.Company, error) {
	return s.companies.ListAll(ctx)
}

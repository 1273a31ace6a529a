package store

import (
	"context"

	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"gorm.io/gorm"
)

type CompanyStore struct {
	db *gorm.DB
}

func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) ListAll(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := s.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

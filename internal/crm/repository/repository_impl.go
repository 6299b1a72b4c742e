package repository

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/crm/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListLeads(ctx context.Context, db *gorm.DB, rng daterange.Range) ([]domain.Lead, error) {
	var leads []domain.Lead
	stmt := db.WithContext(ctx).Model(&domain.Lead{})
	err := rng.Apply(stmt, "lead_date").
		Order("lead_date DESC, id DESC").
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

package repository

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/care/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountTickets(ctx context.Context, db *gorm.DB, rng daterange.Range) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.ServiceTicket{})
	if err := rng.Apply(stmt, "raised_date").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ListTickets(ctx context.Context, db *gorm.DB, rng daterange.Range) ([]domain.ServiceTicket, error) {
	var tickets []domain.ServiceTicket
	stmt := db.WithContext(ctx).Model(&domain.ServiceTicket{})
	err := rng.Apply(stmt, "raised_date").
		Order("raised_date ASC, id ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

package repository

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/erp/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListSales(ctx context.Context, db *gorm.DB, filter domain.SalesFilter) ([]domain.SalesTransaction, error) {
	var rows []domain.SalesTransaction
	stmt := db.WithContext(ctx).
		Table("sales_transactions AS st").
		Select(`st.id, st.organization_id, st.invoice_number, st.customer_name, st.category_id,
			pc.name AS category_name, st.amount, st.due_amount, st.payment_status, st.transaction_date`).
		Joins("LEFT JOIN product_categories pc ON pc.id = st.category_id")
	stmt = filter.Range.Apply(stmt, "st.transaction_date")
	if filter.PaymentStatus != "" {
		stmt = stmt.Where("st.payment_status = ?", filter.PaymentStatus)
	}
	err := stmt.
		Order("st.transaction_date ASC, st.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListTopSelling(ctx context.Context, db *gorm.DB, limit int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := db.WithContext(ctx).
		Model(&domain.InventoryItem{}).
		Select("id, product_name, sku, current_stock, reorder_point, sales_count, unit_price").
		Order("sales_count DESC, product_name ASC, id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListInventory(ctx context.Context, db *gorm.DB) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := db.WithContext(ctx).
		Model(&domain.InventoryItem{}).
		Select("id, product_name, sku, current_stock, reorder_point, sales_count, unit_price").
		Order("product_name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

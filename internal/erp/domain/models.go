package domain

import (
	"time"

	"github.com/smallbiznis/bizpulse/internal/money"
)

const PaymentStatusOverdue = "overdue"

// SalesTransaction is a sales row joined with its category name.
type SalesTransaction struct {
	ID              string       `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID  string       `gorm:"column:organization_id" json:"organization_id"`
	InvoiceNumber   string       `gorm:"column:invoice_number" json:"invoice_number"`
	CustomerName    string       `gorm:"column:customer_name" json:"customer_name"`
	CategoryID      *string      `gorm:"column:category_id" json:"category_id,omitempty"`
	CategoryName    *string      `gorm:"column:category_name;->" json:"category_name,omitempty"`
	Amount          money.Amount `gorm:"column:amount" json:"amount"`
	DueAmount       money.Amount `gorm:"column:due_amount" json:"due_amount"`
	PaymentStatus   string       `gorm:"column:payment_status" json:"payment_status"`
	TransactionDate time.Time    `gorm:"column:transaction_date" json:"transaction_date"`
}

func (SalesTransaction) TableName() string { return "sales_transactions" }

type InventoryItem struct {
	ID             string       `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string       `gorm:"column:organization_id" json:"-"`
	ProductName    string       `gorm:"column:product_name" json:"product_name"`
	SKU            string       `gorm:"column:sku" json:"sku"`
	CurrentStock   int64        `gorm:"column:current_stock" json:"current_stock"`
	ReorderPoint   int64        `gorm:"column:reorder_point" json:"reorder_point"`
	SalesCount     int64        `gorm:"column:sales_count" json:"sales_count"`
	UnitPrice      money.Amount `gorm:"column:unit_price" json:"unit_price"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

type SalesTotal struct {
	TotalSales       float64 `json:"totalSales"`
	TransactionCount int     `json:"transactionCount"`
	Currency         string  `json:"currency"`
}

type CategorySales struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type Overdue struct {
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
	Currency string  `json:"currency"`
}

package domain

import (
	"time"

	"github.com/smallbiznis/bizpulse/internal/money"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusProposal  = "proposal"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// Lead is a CRM lead row. The customers list returns leads as is.
type Lead struct {
	ID             string       `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string       `gorm:"column:organization_id" json:"organization_id"`
	CustomerName   string       `gorm:"column:customer_name" json:"customer_name"`
	CustomerPhone  *string      `gorm:"column:customer_phone" json:"customer_phone,omitempty"`
	CustomerEmail  *string      `gorm:"column:customer_email" json:"customer_email,omitempty"`
	LeadSource     *string      `gorm:"column:lead_source" json:"lead_source,omitempty"`
	Status         string       `gorm:"column:status" json:"status"`
	ExpectedValue  money.Amount `gorm:"column:expected_value" json:"expected_value"`
	LeadDate       time.Time    `gorm:"column:lead_date" json:"lead_date"`
	CreatedAt      time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Lead) TableName() string { return "crm_leads" }

type LeadReporting struct {
	Volume      int     `json:"volume"`
	WonCount    int     `json:"wonCount"`
	LostCount   int     `json:"lostCount"`
	ActiveCount int     `json:"activeCount"`
	TotalValue  float64 `json:"totalValue"`
	WonValue    float64 `json:"wonValue"`
	Currency    string  `json:"currency"`
}

type LeadStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

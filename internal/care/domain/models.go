package domain

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

type ServiceTicket struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string     `gorm:"column:organization_id" json:"organization_id"`
	TicketNumber   string     `gorm:"column:ticket_number" json:"ticket_number"`
	CustomerName   string     `gorm:"column:customer_name" json:"customer_name"`
	IssueCategory  string     `gorm:"column:issue_category" json:"issue_category"`
	Description    *string    `gorm:"column:description" json:"description,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	Priority       string     `gorm:"column:priority" json:"priority"`
	RaisedDate     time.Time  `gorm:"column:raised_date" json:"raised_date"`
	ResolvedDate   *time.Time `gorm:"column:resolved_date" json:"resolved_date,omitempty"`
}

func (ServiceTicket) TableName() string { return "service_tickets" }

// IsResolved reports whether the ticket counts as resolved on trend charts.
func (t ServiceTicket) IsResolved() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}

type TicketTotal struct {
	Total int64 `json:"total"`
}

type TicketCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type TicketTrend struct {
	Date     string `json:"date"`
	Open     int    `json:"open"`
	Resolved int    `json:"resolved"`
}

package domain

import "time"

const (
	ShipmentTypeRegular = "regular"
	ShipmentTypeSpare   = "spare"

	ShipmentStatusPending  = "pending"
	ShipmentStatusReceived = "received"
)

const (
	DeliveryTypeCycleDelivered  = "cycle_delivered"
	DeliveryTypePickupPending   = "pickup_pending"
	DeliveryTypePickupCleared   = "pickup_cleared"
	DeliveryTypeOutsideDelivery = "outside_delivery"

	DeliveryStatusPending   = "pending"
	DeliveryStatusCompleted = "completed"
)

// DeliveryTypes lists every delivery type the dashboard reports on.
var DeliveryTypes = []string{
	DeliveryTypeCycleDelivered,
	DeliveryTypePickupPending,
	DeliveryTypePickupCleared,
	DeliveryTypeOutsideDelivery,
}

func IsDeliveryType(value string) bool {
	for _, t := range DeliveryTypes {
		if t == value {
			return true
		}
	}
	return false
}

type Shipment struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string     `gorm:"column:organization_id" json:"organization_id"`
	ShipmentNumber string     `gorm:"column:shipment_number" json:"shipment_number"`
	ShipmentType   string     `gorm:"column:shipment_type" json:"shipment_type"`
	Status         string     `gorm:"column:status" json:"status"`
	ExpectedDate   *time.Time `gorm:"column:expected_date" json:"expected_date,omitempty"`
	ReceivedDate   *time.Time `gorm:"column:received_date" json:"received_date,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Shipment) TableName() string { return "shipments" }

type Delivery struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string     `gorm:"column:organization_id" json:"organization_id"`
	DeliveryNumber string     `gorm:"column:delivery_number" json:"delivery_number"`
	DeliveryType   string     `gorm:"column:delivery_type" json:"delivery_type"`
	Status         string     `gorm:"column:status" json:"status"`
	DeliveryDate   *time.Time `gorm:"column:delivery_date" json:"delivery_date,omitempty"`
	CustomerName   *string    `gorm:"column:customer_name" json:"customer_name,omitempty"`
	Address        *string    `gorm:"column:address" json:"address,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Delivery) TableName() string { return "deliveries" }

type ShipmentSummary struct {
	Due      int64 `json:"due"`
	Received int64 `json:"received"`
	Spare    int64 `json:"spare"`
}

type DeliverySummary struct {
	CycleDelivered  int `json:"cycleDelivered"`
	PickupPending   int `json:"pickupPending"`
	PickupCleared   int `json:"pickupCleared"`
	OutsideDelivery int `json:"outsideDelivery"`
}

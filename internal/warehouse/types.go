//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "time"

// Entity identifiers are assigned by the generator, starting at 1 and
// increasing in generation order. Rows are written with their explicit
// identifiers, so in-memory references and persisted foreign keys are
// the same values.

// Product is an immutable catalog entry.
type Product struct {
	ID        int64
	SKU       string
	Name      string
	Category  string
	UnitPrice float64
	Active    bool
}

// Customer is an immutable customer account.
type Customer struct {
	ID             int64
	CreatedAt      time.Time
	Email          string
	FirstName      string
	LastName       string
	Country        string
	MarketingOptIn bool
}

// Order is an order header. Total is the authoritative order total:
// the sum over its items of quantity*unit_price - discount, plus
// shipping cost.
type Order struct {
	ID           int64
	CustomerID   int64
	OrderTS      time.Time
	Status       string
	Channel      string
	Currency     string
	ShippingCost float64
	Total        float64
}

// OrderItem is one order line. UnitPrice is a snapshot of the product
// price at purchase time.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice float64
	Discount  float64
}

// Payment is the single payment of a non-cancelled order. Amount
// always equals the order total; Status reflects any later refund.
type Payment struct {
	ID      int64
	OrderID int64
	PaidTS  time.Time
	Method  string
	Amount  float64
	Status  string
}

// Shipment is the single shipment of a paid order. DeliveredTS is nil
// exactly when the shipment is lost.
type Shipment struct {
	ID           int64
	OrderID      int64
	Carrier      string
	ServiceLevel string
	ShippedTS    time.Time
	DeliveredTS  *time.Time
	Status       string
}

// Refund is the at-most-one refund of an order.
type Refund struct {
	ID       int64
	OrderID  int64
	RefundTS time.Time
	Amount   float64
	Reason   string
}

// WebEvent is one event of a web session. CustomerID is nil for
// anonymous sessions; ProductID is nil for events that do not refer to
// a product.
type WebEvent struct {
	ID          int64
	EventTS     time.Time
	SessionID   string
	CustomerID  *int64
	EventType   string
	ProductID   *int64
	Channel     string
	UTMSource   string
	UTMCampaign string
}

// Dataset is a complete generated warehouse: every foreign reference
// resolves within the dataset, and every invariant of the generator
// contract holds. It is only handed out fully reconciled.
type Dataset struct {
	Products   []Product
	Customers  []Customer
	Orders     []Order
	OrderItems []OrderItem
	Payments   []Payment
	Shipments  []Shipment
	Refunds    []Refund
	WebEvents  []WebEvent
}

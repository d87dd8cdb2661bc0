//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse implements the e-commerce warehouse schema and its
// synthetic dataset generator.
package warehouse

// Fixed vocabulary shared by the generator and the curated queries.
// The curated SQL assumes these exact values, so they are constants of
// the schema, not tunables.

// Categories are the product categories.
var Categories = []string{
	"Apparel", "Shoes", "Beauty", "Electronics", "Home", "Fitness", "Outdoors",
}

// Countries are the customer countries.
var Countries = []string{"US", "CA", "GB", "DE", "FR", "AU"}

// Carriers are the shipping carriers.
var Carriers = []string{"UPS", "USPS", "FedEx", "DHL"}

// OrderChannels are the sales channels an order can originate from.
var OrderChannels = []string{"web", "mobile", "marketplace"}

// EventChannels are the channels a web session can originate from.
var EventChannels = []string{"web", "mobile"}

// PaymentMethods are the accepted payment methods.
var PaymentMethods = []string{"card", "paypal", "apple_pay", "klarna"}

// ServiceLevels are the shipping service levels.
var ServiceLevels = []string{"standard", "expedited", "overnight"}

// RefundReasons are the accepted refund reasons.
var RefundReasons = []string{"damaged", "late_delivery", "wrong_item", "changed_mind", "other"}

// UTMSources are the traffic sources.
var UTMSources = []string{"google", "meta", "tiktok", "newsletter", "affiliate"}

// UTMCampaigns are the marketing campaigns.
var UTMCampaigns = []string{"brand", "promo", "retargeting", "new_arrivals", "clearance"}

// Currency is the only currency in the demo dataset.
const Currency = "USD"

// Order statuses. An order moves placed -> {paid|cancelled} and a paid
// order is advanced exactly once by the reconciliation pass, never
// backwards.
const (
	OrderPlaced    = "placed"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderRefunded  = "refunded"
)

// Payment statuses.
const (
	PaymentPaid          = "paid"
	PaymentPartialRefund = "partial_refund"
	PaymentRefunded      = "refunded"
)

// Shipment statuses.
const (
	ShipmentDelivered = "delivered"
	ShipmentLost      = "lost"
	ShipmentReturned  = "returned"
)

// FunnelStages is the ordered web event funnel. Within a session the
// observed event types are always a prefix of this sequence.
var FunnelStages = []string{
	EventSessionStart,
	EventProductView,
	EventAddToCart,
	EventCheckoutStart,
	EventPurchase,
}

// Web event types.
const (
	EventSessionStart  = "session_start"
	EventProductView   = "product_view"
	EventAddToCart     = "add_to_cart"
	EventCheckoutStart = "checkout_start"
	EventPurchase      = "purchase"
)

//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "fmt"

// IntWeights is a weighted choice over int values.
type IntWeights struct {
	Values  []int
	Weights []int
}

// FloatWeights is a weighted choice over float64 values.
type FloatWeights struct {
	Values  []float64
	Weights []int
}

// StringWeights is a weighted choice over string values.
type StringWeights struct {
	Values  []string
	Weights []int
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min, Max int
}

// Rates holds every probability table and bounded delay the generator
// draws from. They are policy constants of the demo dataset, gathered
// here so tests can substitute deterministic or edge-case tables.
type Rates struct {
	// Products
	PriceMin, PriceMax float64

	// Customers
	MarketingOptInProb float64

	// Orders and carts
	ChannelWeights   StringWeights
	ItemCountWeights IntWeights
	QuantityWeights  IntWeights
	DiscountProb     float64
	DiscountMin      float64 // fraction of quantity*unit_price
	DiscountMax      float64
	ShippingFees     FloatWeights
	PaidProb         float64
	CancelledProb    float64 // applied only when the order is not paid

	// Payments
	MethodWeights   StringWeights
	PaidDelayMinutes IntRange // minutes after order_ts
	ServiceWeights  StringWeights
	ShipDelayHours  IntRange // hours after paid_ts
	TransitDays     map[string]IntRange
	DeliveryJitterHours IntRange // extra hours on top of transit days
	LostProb        float64
	ReturnedProb    float64

	// Refunds
	RefundProb        float64
	RefundFractionMin float64
	RefundFractionMax float64
	RefundDelayDays   IntRange // days after delivered_ts
	RefundGraceDays   IntRange // days after shipped_ts when never delivered
	ReasonWeights     StringWeights

	// Web sessions
	EventChannelWeights StringWeights
	KnownCustomerProb   float64
	ViewCountWeights    IntWeights
	AddToCartProb       float64
	CheckoutProb        float64
	PurchaseProb        float64
	ViewGapSeconds      IntRange
	CartGapSeconds      IntRange
	CheckoutGapSeconds  IntRange
	PurchaseGapSeconds  IntRange
}

// DefaultRates returns the policy tables the demo dataset is built
// with. The values match the published showcase numbers (93% of orders
// paid, 8% of non-cancelled orders refunded, 0.7% of shipments lost).
func DefaultRates() Rates {
	return Rates{
		PriceMin: 8,
		PriceMax: 250,

		MarketingOptInProb: 0.55,

		ChannelWeights:   StringWeights{Values: OrderChannels, Weights: []int{55, 30, 15}},
		ItemCountWeights: IntWeights{Values: []int{1, 2, 3, 4}, Weights: []int{55, 25, 14, 6}},
		QuantityWeights:  IntWeights{Values: []int{1, 2, 3}, Weights: []int{78, 18, 4}},
		DiscountProb:     0.28,
		DiscountMin:      0.05,
		DiscountMax:      0.25,
		ShippingFees:     FloatWeights{Values: []float64{0, 4.99, 7.99, 11.99}, Weights: []int{22, 44, 26, 8}},
		PaidProb:         0.93,
		CancelledProb:    0.65,

		MethodWeights:  StringWeights{Values: PaymentMethods, Weights: []int{72, 14, 10, 4}},
		PaidDelayMinutes: IntRange{1, 360},
		ServiceWeights: StringWeights{Values: ServiceLevels, Weights: []int{76, 20, 4}},
		ShipDelayHours: IntRange{2, 72},
		TransitDays: map[string]IntRange{
			"standard":  {3, 7},
			"expedited": {2, 4},
			"overnight": {1, 1},
		},
		DeliveryJitterHours: IntRange{0, 12},
		LostProb:        0.007,
		ReturnedProb:    0.03,

		RefundProb:        0.08,
		RefundFractionMin: 0.25,
		RefundFractionMax: 1.0,
		RefundDelayDays:   IntRange{1, 21},
		RefundGraceDays:   IntRange{7, 30},
		ReasonWeights:     StringWeights{Values: RefundReasons, Weights: []int{18, 18, 22, 34, 8}},

		EventChannelWeights: StringWeights{Values: EventChannels, Weights: []int{62, 38}},
		KnownCustomerProb:   0.35,
		ViewCountWeights:    IntWeights{Values: []int{1, 2, 3, 4, 5}, Weights: []int{18, 26, 24, 18, 14}},
		AddToCartProb:       0.32,
		CheckoutProb:        0.55,
		PurchaseProb:        0.72,
		ViewGapSeconds:      IntRange{10, 240},
		CartGapSeconds:      IntRange{5, 120},
		CheckoutGapSeconds:  IntRange{20, 180},
		PurchaseGapSeconds:  IntRange{30, 300},
	}
}

// Validate checks that the rates are internally consistent.
func (r Rates) Validate() error {
	if r.PriceMin <= 0 || r.PriceMax < r.PriceMin {
		return fmt.Errorf("invalid price range [%f, %f]", r.PriceMin, r.PriceMax)
	}
	probs := map[string]float64{
		"marketing_opt_in": r.MarketingOptInProb,
		"discount":         r.DiscountProb,
		"paid":             r.PaidProb,
		"cancelled":        r.CancelledProb,
		"lost":             r.LostProb,
		"returned":         r.ReturnedProb,
		"refund":           r.RefundProb,
		"known_customer":   r.KnownCustomerProb,
		"add_to_cart":      r.AddToCartProb,
		"checkout":         r.CheckoutProb,
		"purchase":         r.PurchaseProb,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("probability %s out of range: %f", name, p)
		}
	}
	if r.DiscountMin < 0 || r.DiscountMax > 1 || r.DiscountMax < r.DiscountMin {
		return fmt.Errorf("invalid discount range [%f, %f]", r.DiscountMin, r.DiscountMax)
	}
	if r.RefundFractionMin <= 0 || r.RefundFractionMax > 1 || r.RefundFractionMax < r.RefundFractionMin {
		return fmt.Errorf("invalid refund fraction range [%f, %f]", r.RefundFractionMin, r.RefundFractionMax)
	}
	tables := []struct {
		name           string
		values, weight int
	}{
		{"channel", len(r.ChannelWeights.Values), len(r.ChannelWeights.Weights)},
		{"item_count", len(r.ItemCountWeights.Values), len(r.ItemCountWeights.Weights)},
		{"quantity", len(r.QuantityWeights.Values), len(r.QuantityWeights.Weights)},
		{"shipping", len(r.ShippingFees.Values), len(r.ShippingFees.Weights)},
		{"method", len(r.MethodWeights.Values), len(r.MethodWeights.Weights)},
		{"service", len(r.ServiceWeights.Values), len(r.ServiceWeights.Weights)},
		{"reason", len(r.ReasonWeights.Values), len(r.ReasonWeights.Weights)},
		{"event_channel", len(r.EventChannelWeights.Values), len(r.EventChannelWeights.Weights)},
		{"view_count", len(r.ViewCountWeights.Values), len(r.ViewCountWeights.Weights)},
	}
	for _, tbl := range tables {
		if tbl.values == 0 || tbl.values != tbl.weight {
			return fmt.Errorf("weight table %s: %d values, %d weights", tbl.name, tbl.values, tbl.weight)
		}
	}
	for _, level := range r.ServiceWeights.Values {
		tr, ok := r.TransitDays[level]
		if !ok {
			return fmt.Errorf("no transit days for service level %s", level)
		}
		if tr.Min < 1 || tr.Max < tr.Min {
			return fmt.Errorf("invalid transit days for %s: [%d, %d]", level, tr.Min, tr.Max)
		}
	}
	ranges := map[string]IntRange{
		"paid_delay":      r.PaidDelayMinutes,
		"ship_delay":      r.ShipDelayHours,
		"delivery_jitter": r.DeliveryJitterHours,
		"refund_delay":    r.RefundDelayDays,
		"refund_grace":    r.RefundGraceDays,
		"view_gap":        r.ViewGapSeconds,
		"cart_gap":        r.CartGapSeconds,
		"checkout_gap":    r.CheckoutGapSeconds,
		"purchase_gap":    r.PurchaseGapSeconds,
	}
	for name, rg := range ranges {
		if rg.Min < 0 || rg.Max < rg.Min {
			return fmt.Errorf("invalid range %s: [%d, %d]", name, rg.Min, rg.Max)
		}
	}
	return nil
}

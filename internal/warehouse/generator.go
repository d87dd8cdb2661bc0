//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-warehouse/internal/datagen"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
)

var (
	// ErrConfig reports an invalid or inconsistent population config.
	// It is returned before any generation work starts.
	ErrConfig = errors.New("invalid generation config")

	// ErrGeneration reports a violated internal invariant. It should be
	// unreachable with a valid config; when it occurs the dataset is
	// discarded, there is no partial result.
	ErrGeneration = errors.New("generation invariant violated")
)

// Population holds the entity counts to generate. Zero counts are
// valid and yield empty downstream sets.
type Population struct {
	Products  int
	Customers int
	Orders    int
	Sessions  int
}

// Config configures a generation run.
type Config struct {
	// Seed seeds the single random stream all stages draw from. The
	// same Seed and config produce an identical dataset.
	Seed int64

	// Population holds the entity counts.
	Population Population

	// Rates holds the probability tables. The zero value means
	// DefaultRates().
	Rates *Rates

	// End is the end of the historical window. The zero value means
	// the current day (UTC, truncated to midnight so repeated runs
	// within a day are identical).
	End time.Time

	// LookbackDays is the window size. Zero means 365.
	LookbackDays int
}

// generator carries the state of one generation run. All randomness
// comes from the owned faker, threaded through the stages in a fixed
// order; nothing touches process-global random state.
type generator struct {
	f     *datagen.Faker
	rates Rates
	start time.Time
	end   time.Time
	ds    *Dataset
}

// Generate produces a complete, causally consistent dataset for the
// given config. Stages run in strict dependency order: products and
// customers, then orders with their carts, then authoritative totals,
// then payments/shipments/refunds, then the single status
// reconciliation pass, then web events. The returned dataset is fully
// reconciled; on error no dataset is returned.
func Generate(cfg Config) (*Dataset, error) {
	pop := cfg.Population
	if pop.Products < 0 || pop.Customers < 0 || pop.Orders < 0 || pop.Sessions < 0 {
		return nil, fmt.Errorf("%w: population counts must be non-negative", ErrConfig)
	}
	if pop.Orders > 0 && pop.Customers == 0 {
		return nil, fmt.Errorf("%w: orders require customers", ErrConfig)
	}
	if pop.Orders > 0 && pop.Products == 0 {
		return nil, fmt.Errorf("%w: orders require products", ErrConfig)
	}
	if pop.Sessions > 0 && pop.Products == 0 {
		return nil, fmt.Errorf("%w: web sessions require products", ErrConfig)
	}

	rates := DefaultRates()
	if cfg.Rates != nil {
		rates = *cfg.Rates
	}
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	end := cfg.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	end = end.UTC()
	lookback := cfg.LookbackDays
	if lookback == 0 {
		lookback = 365
	}
	if lookback < 1 {
		return nil, fmt.Errorf("%w: lookback must be at least one day", ErrConfig)
	}

	g := &generator{
		f:     datagen.NewFakerWithSeed(uint64(cfg.Seed)),
		rates: rates,
		start: end.AddDate(0, 0, -lookback),
		end:   end,
		ds:    &Dataset{},
	}

	logging.Info().
		Int64("seed", cfg.Seed).
		Int("products", pop.Products).
		Int("customers", pop.Customers).
		Int("orders", pop.Orders).
		Int("sessions", pop.Sessions).
		Msg("Generating dataset")

	g.generateProducts(pop.Products)
	g.generateCustomers(pop.Customers)
	g.generateOrders(pop.Orders)
	if err := g.reconcileTotals(); err != nil {
		return nil, err
	}
	g.generateFulfillment()
	g.reconcileStatuses()
	g.generateWebEvents(pop.Sessions)

	if err := g.verify(); err != nil {
		return nil, err
	}

	logging.Info().
		Int("orders", len(g.ds.Orders)).
		Int("order_items", len(g.ds.OrderItems)).
		Int("payments", len(g.ds.Payments)).
		Int("refunds", len(g.ds.Refunds)).
		Int("web_events", len(g.ds.WebEvents)).
		Msg("Dataset complete")

	return g.ds, nil
}

func (g *generator) generateProducts(count int) {
	products := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		category := datagen.Choose(g.f, Categories)
		products = append(products, Product{
			ID:        int64(i + 1),
			SKU:       fmt.Sprintf("SKU-%05d", i),
			Name:      fmt.Sprintf("%s %s %s", g.f.Color(), singular(category), titleWord(g.f.Word())),
			Category:  category,
			UnitPrice: round2(g.f.Float64(g.rates.PriceMin, g.rates.PriceMax)),
			Active:    true,
		})
	}
	g.ds.Products = products
}

func (g *generator) generateCustomers(count int) {
	customers := make([]Customer, 0, count)
	for i := 0; i < count; i++ {
		first := g.f.FirstName()
		last := g.f.LastName()
		customers = append(customers, Customer{
			ID:        int64(i + 1),
			CreatedAt: g.f.DateRange(g.start, g.end).UTC(),
			// Indexed emails keep uniqueness deterministic.
			Email:          fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			FirstName:      first,
			LastName:       last,
			Country:        datagen.Choose(g.f, Countries),
			MarketingOptIn: g.f.Chance(g.rates.MarketingOptInProb),
		})
	}
	g.ds.Customers = customers
}

// generateOrders builds order skeletons and their carts in one pass.
// Items are created carrying their order's identifier, so no later
// re-association (and no re-seeded draws) is ever needed.
func (g *generator) generateOrders(count int) {
	orders := make([]Order, 0, count)
	items := make([]OrderItem, 0, count*2)
	itemID := int64(0)

	for i := 0; i < count; i++ {
		orderID := int64(i + 1)
		customer := g.ds.Customers[g.f.Int(0, len(g.ds.Customers)-1)]

		itemN := chooseInt(g.f, g.rates.ItemCountWeights)
		if itemN > len(g.ds.Products) {
			itemN = len(g.ds.Products)
		}

		subtotal := 0.0
		for _, product := range g.sampleProducts(itemN) {
			qty := chooseInt(g.f, g.rates.QuantityWeights)
			discount := 0.0
			if g.f.Chance(g.rates.DiscountProb) {
				discount = round2(product.UnitPrice * float64(qty) * g.f.Float64(g.rates.DiscountMin, g.rates.DiscountMax))
			}
			subtotal += product.UnitPrice*float64(qty) - discount

			itemID++
			items = append(items, OrderItem{
				ID:        itemID,
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  qty,
				UnitPrice: product.UnitPrice,
				Discount:  discount,
			})
		}

		shipping := chooseFloat(g.f, g.rates.ShippingFees)

		status := OrderPlaced
		if g.f.Chance(g.rates.PaidProb) {
			status = OrderPaid
		} else if g.f.Chance(g.rates.CancelledProb) {
			status = OrderCancelled
		}

		orders = append(orders, Order{
			ID:           orderID,
			CustomerID:   customer.ID,
			OrderTS:      g.f.DateRange(g.start, g.end).UTC(),
			Status:       status,
			Channel:      chooseString(g.f, g.rates.ChannelWeights),
			Currency:     Currency,
			ShippingCost: shipping,
			// Provisional; replaced by the authoritative item-derived
			// total in reconcileTotals.
			Total: round2(subtotal + shipping),
		})
	}

	g.ds.Orders = orders
	g.ds.OrderItems = items
}

// sampleProducts picks n distinct products. n is small (cart sizes),
// so rejection sampling terminates quickly and stays deterministic.
func (g *generator) sampleProducts(n int) []Product {
	picked := make([]Product, 0, n)
	seen := make(map[int64]bool, n)
	for len(picked) < n {
		p := g.ds.Products[g.f.Int(0, len(g.ds.Products)-1)]
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		picked = append(picked, p)
	}
	return picked
}

// reconcileTotals recomputes each order's total from its persisted
// items. The item-derived value is the total of record used by
// payment and refund amounts; the skeleton value only cross-checks it.
func (g *generator) reconcileTotals() error {
	itemTotals := make([]float64, len(g.ds.Orders))
	for _, item := range g.ds.OrderItems {
		itemTotals[item.OrderID-1] += item.UnitPrice*float64(item.Quantity) - item.Discount
	}
	for i := range g.ds.Orders {
		o := &g.ds.Orders[i]
		total := round2(itemTotals[i] + o.ShippingCost)
		if math.Abs(total-o.Total) > 0.011 {
			return fmt.Errorf("%w: order %d total %f does not match item-derived total %f",
				ErrGeneration, o.ID, o.Total, total)
		}
		o.Total = total
	}
	return nil
}

// generateFulfillment draws payments, shipments and refunds for every
// non-cancelled order, with each timestamp a bounded delay after its
// causal predecessor.
func (g *generator) generateFulfillment() {
	r := g.rates
	for _, o := range g.ds.Orders {
		if o.Status == OrderCancelled {
			continue
		}

		paidTS := o.OrderTS.Add(time.Duration(randRange(g.f, r.PaidDelayMinutes)) * time.Minute)
		method := chooseString(g.f, r.MethodWeights)

		shippedTS := paidTS.Add(time.Duration(randRange(g.f, r.ShipDelayHours)) * time.Hour)
		serviceLevel := chooseString(g.f, r.ServiceWeights)
		carrier := datagen.Choose(g.f, Carriers)
		transit := randRange(g.f, r.TransitDays[serviceLevel])
		delivered := shippedTS.AddDate(0, 0, transit).
			Add(time.Duration(randRange(g.f, r.DeliveryJitterHours)) * time.Hour)

		shipStatus := ShipmentDelivered
		deliveredTS := &delivered
		if g.f.Chance(r.LostProb) {
			shipStatus = ShipmentLost
			deliveredTS = nil
		} else if g.f.Chance(r.ReturnedProb) {
			shipStatus = ShipmentReturned
		}

		g.ds.Shipments = append(g.ds.Shipments, Shipment{
			ID:           int64(len(g.ds.Shipments) + 1),
			OrderID:      o.ID,
			Carrier:      carrier,
			ServiceLevel: serviceLevel,
			ShippedTS:    shippedTS,
			DeliveredTS:  deliveredTS,
			Status:       shipStatus,
		})

		payStatus := PaymentPaid
		if g.f.Chance(r.RefundProb) {
			amount := round2(o.Total * g.f.Float64(r.RefundFractionMin, r.RefundFractionMax))
			var refundTS time.Time
			if deliveredTS != nil {
				refundTS = deliveredTS.AddDate(0, 0, randRange(g.f, r.RefundDelayDays))
			} else {
				// Lost shipment: the grace period counts from shipped_ts
				// since there is no delivery to count from.
				refundTS = shippedTS.AddDate(0, 0, randRange(g.f, r.RefundGraceDays))
			}
			g.ds.Refunds = append(g.ds.Refunds, Refund{
				ID:       int64(len(g.ds.Refunds) + 1),
				OrderID:  o.ID,
				RefundTS: refundTS,
				Amount:   amount,
				Reason:   chooseString(g.f, r.ReasonWeights),
			})
			if amount >= o.Total-0.005 {
				payStatus = PaymentRefunded
			} else {
				payStatus = PaymentPartialRefund
			}
		}

		g.ds.Payments = append(g.ds.Payments, Payment{
			ID:      int64(len(g.ds.Payments) + 1),
			OrderID: o.ID,
			PaidTS:  paidTS,
			Method:  method,
			Amount:  o.Total,
			Status:  payStatus,
		})
	}
}

// reconcileStatuses is the single authoritative status mutation: it
// folds payment, shipment and refund outcomes into each order's final
// status with the priority refunded > delivered > shipped, never
// moving a status backwards. Cancelled orders are untouched. Returned
// shipments reconcile to delivered at the order level: the delivery
// did happen, and the return is visible through the shipments and
// refunds tables.
func (g *generator) reconcileStatuses() {
	refunded := make(map[int64]bool, len(g.ds.Refunds))
	for _, r := range g.ds.Refunds {
		refunded[r.OrderID] = true
	}
	shipmentByOrder := make(map[int64]*Shipment, len(g.ds.Shipments))
	for i := range g.ds.Shipments {
		shipmentByOrder[g.ds.Shipments[i].OrderID] = &g.ds.Shipments[i]
	}

	for i := range g.ds.Orders {
		o := &g.ds.Orders[i]
		if o.Status == OrderCancelled {
			continue
		}
		switch s := shipmentByOrder[o.ID]; {
		case refunded[o.ID]:
			o.Status = OrderRefunded
		case s != nil && s.DeliveredTS != nil:
			o.Status = OrderDelivered
		case s != nil:
			o.Status = OrderShipped
		}
	}
}

// generateWebEvents walks the funnel stage by stage per session; a
// stage is only reachable when every earlier stage occurred, and each
// event is strictly after the previous one.
func (g *generator) generateWebEvents(sessions int) {
	r := g.rates
	eventID := int64(0)
	emit := func(ts time.Time, sessionID string, customerID *int64, eventType string, productID *int64, channel, source, campaign string) {
		eventID++
		g.ds.WebEvents = append(g.ds.WebEvents, WebEvent{
			ID:          eventID,
			EventTS:     ts,
			SessionID:   sessionID,
			CustomerID:  customerID,
			EventType:   eventType,
			ProductID:   productID,
			Channel:     channel,
			UTMSource:   source,
			UTMCampaign: campaign,
		})
	}

	for i := 0; i < sessions; i++ {
		ts := g.f.DateRange(g.start, g.end).UTC()
		sessionID := g.f.UUID()
		channel := chooseString(g.f, r.EventChannelWeights)
		source := datagen.Choose(g.f, UTMSources)
		campaign := datagen.Choose(g.f, UTMCampaigns)

		var customerID *int64
		if len(g.ds.Customers) > 0 && g.f.Chance(r.KnownCustomerProb) {
			id := g.ds.Customers[g.f.Int(0, len(g.ds.Customers)-1)].ID
			customerID = &id
		}

		emit(ts, sessionID, customerID, EventSessionStart, nil, channel, source, campaign)

		var lastProduct *int64
		for v := chooseInt(g.f, r.ViewCountWeights); v > 0; v-- {
			ts = ts.Add(time.Duration(randRange(g.f, r.ViewGapSeconds)) * time.Second)
			id := g.ds.Products[g.f.Int(0, len(g.ds.Products)-1)].ID
			lastProduct = &id
			emit(ts, sessionID, customerID, EventProductView, lastProduct, channel, source, campaign)
		}

		if !g.f.Chance(r.AddToCartProb) {
			continue
		}
		ts = ts.Add(time.Duration(randRange(g.f, r.CartGapSeconds)) * time.Second)
		emit(ts, sessionID, customerID, EventAddToCart, lastProduct, channel, source, campaign)

		if !g.f.Chance(r.CheckoutProb) {
			continue
		}
		ts = ts.Add(time.Duration(randRange(g.f, r.CheckoutGapSeconds)) * time.Second)
		emit(ts, sessionID, customerID, EventCheckoutStart, lastProduct, channel, source, campaign)

		if !g.f.Chance(r.PurchaseProb) {
			continue
		}
		ts = ts.Add(time.Duration(randRange(g.f, r.PurchaseGapSeconds)) * time.Second)
		emit(ts, sessionID, customerID, EventPurchase, lastProduct, channel, source, campaign)
	}
}

// verify sweeps the finished dataset before it is handed out. A
// failure here means a generator bug, not bad input.
func (g *generator) verify() error {
	ds := g.ds

	paymentByOrder := make(map[int64]*Payment, len(ds.Payments))
	for i := range ds.Payments {
		paymentByOrder[ds.Payments[i].OrderID] = &ds.Payments[i]
	}
	shipmentByOrder := make(map[int64]*Shipment, len(ds.Shipments))
	for i := range ds.Shipments {
		shipmentByOrder[ds.Shipments[i].OrderID] = &ds.Shipments[i]
	}
	refundByOrder := make(map[int64]*Refund, len(ds.Refunds))
	for i := range ds.Refunds {
		refundByOrder[ds.Refunds[i].OrderID] = &ds.Refunds[i]
	}

	for _, o := range ds.Orders {
		p := paymentByOrder[o.ID]
		s := shipmentByOrder[o.ID]
		r := refundByOrder[o.ID]

		if o.Status == OrderCancelled {
			if p != nil || s != nil || r != nil {
				return fmt.Errorf("%w: cancelled order %d has fulfillment rows", ErrGeneration, o.ID)
			}
			continue
		}
		if p != nil && p.PaidTS.Before(o.OrderTS) {
			return fmt.Errorf("%w: order %d paid before placed", ErrGeneration, o.ID)
		}
		if s != nil {
			if p == nil || s.ShippedTS.Before(p.PaidTS) {
				return fmt.Errorf("%w: order %d shipped before paid", ErrGeneration, o.ID)
			}
			if s.DeliveredTS == nil && s.Status != ShipmentLost {
				return fmt.Errorf("%w: order %d missing delivery on %s shipment", ErrGeneration, o.ID, s.Status)
			}
			if s.DeliveredTS != nil && s.DeliveredTS.Before(s.ShippedTS) {
				return fmt.Errorf("%w: order %d delivered before shipped", ErrGeneration, o.ID)
			}
		}
		if r != nil {
			if r.Amount <= 0 || r.Amount > o.Total+0.005 {
				return fmt.Errorf("%w: order %d refund amount %f out of range", ErrGeneration, o.ID, r.Amount)
			}
			after := o.OrderTS
			if s != nil {
				after = s.ShippedTS
				if s.DeliveredTS != nil {
					after = *s.DeliveredTS
				}
			}
			if r.RefundTS.Before(after) {
				return fmt.Errorf("%w: order %d refunded before fulfillment", ErrGeneration, o.ID)
			}
		}
	}
	return nil
}

func chooseInt(f *datagen.Faker, w IntWeights) int {
	return datagen.ChooseWeighted(f, w.Values, w.Weights)
}

func chooseFloat(f *datagen.Faker, w FloatWeights) float64 {
	return datagen.ChooseWeighted(f, w.Values, w.Weights)
}

func chooseString(f *datagen.Faker, w StringWeights) string {
	return datagen.ChooseWeighted(f, w.Values, w.Weights)
}

func randRange(f *datagen.Faker, r IntRange) int {
	return f.Int(r.Min, r.Max)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// singular drops a trailing plural s ("Shoes" -> "Shoe") for product
// name synthesis.
func singular(s string) string {
	if strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdomain "github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/internal/pricing"
	"github.com/machbazar/storefront/kafka"
	"github.com/machbazar/storefront/pkg/logger"
)

var (
	phonePattern         = regexp.MustCompile(`^(?:\+?88)?01[3-9]\d{8}$`)
	transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)
	phoneSeparators      = strings.NewReplacer(" ", "", "-", "")
)

// PlaceOrderCommand checks out a session cart. A returning customer may send
// only CustomerPhone; the order then references the contact given on their
// earlier orders.
type PlaceOrderCommand struct {
	SessionID     string
	Customer      domain.Customer
	CustomerPhone string
	PaymentMethod string
	TransactionID string
}

// returning reports whether the command identifies the customer by phone only
func (c PlaceOrderCommand) returning() bool {
	return c.CustomerPhone != "" && c.Customer == domain.Customer{}
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	sessions *store.Sessions
	products catalogdomain.ProductRepository
	orders   domain.OrderRepository
	events   EventPublisher
	now      func() time.Time
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(
	sessions *store.Sessions,
	products catalogdomain.ProductRepository,
	orders domain.OrderRepository,
	events EventPublisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		sessions: sessions,
		products: products,
		orders:   orders,
		events:   events,
		now:      time.Now,
	}
}

// Handle executes the place order command. Lines are re-priced from the
// live catalog; the cart is cleared only once the order is stored.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	cmd, err := normalize(cmd)
	if err != nil {
		return nil, err
	}
	customer, err := h.customerRef(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = h.sessions.Do(ctx, cmd.SessionID, func(st *store.Store) error {
		cart := st.Cart()
		if len(cart.Items) == 0 {
			var errs catalogdomain.ValidationErrors
			errs.Add("cart", "is empty")
			return errs
		}

		lines, err := h.priceLines(ctx, cart.Items)
		if err != nil {
			return err
		}

		now := h.now()
		order = &domain.Order{
			OrderID:       newOrderID(now),
			SessionID:     cmd.SessionID,
			Customer:      customer,
			PaymentMethod: cmd.PaymentMethod,
			TransactionID: cmd.TransactionID,
			Lines:         lines,
			Status:        domain.StatusPendingVerification,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for _, line := range lines {
			order.Subtotal += line.Subtotal
			order.Discount += line.Discount
			order.Total += line.Total
		}

		if err := h.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
		st.Discard(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("order_id", order.OrderID).
		Str("payment_method", order.PaymentMethod).
		Float64("total", order.Total).
		Int("lines", len(order.Lines)).
		Msg("Order placed")

	err = h.events.PublishOrderPlaced(ctx, kafka.OrderPlacedEvent{
		OrderID:       order.OrderID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Lines:         eventLines(order),
	})
	if err != nil {
		logger.Error(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to publish order placed event")
	}

	return order, nil
}

// customerRef builds the order's customer. A returning customer must have a
// previous order with full contact details.
func (h *PlaceOrderHandler) customerRef(ctx context.Context, cmd PlaceOrderCommand) (domain.CustomerRef, error) {
	if !cmd.returning() {
		return domain.Populated(cmd.Customer), nil
	}

	_, err := h.orders.FindCustomerByPhone(ctx, cmd.CustomerPhone)
	if errors.Is(err, domain.ErrNotFound) {
		var errs catalogdomain.ValidationErrors
		errs.Add("customerPhone", "has no previous order, enter delivery details")
		return domain.CustomerRef{}, errs
	}
	if err != nil {
		return domain.CustomerRef{}, fmt.Errorf("failed to look up customer: %w", err)
	}
	return domain.Reference(cmd.CustomerPhone), nil
}

func normalize(cmd PlaceOrderCommand) (PlaceOrderCommand, error) {
	var errs catalogdomain.ValidationErrors

	c := &cmd.Customer
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = phoneSeparators.Replace(strings.TrimSpace(c.Phone))
	c.Address = strings.TrimSpace(c.Address)
	c.Area = strings.TrimSpace(c.Area)
	c.Notes = strings.TrimSpace(c.Notes)
	cmd.CustomerPhone = phoneSeparators.Replace(strings.TrimSpace(cmd.CustomerPhone))
	cmd.PaymentMethod = strings.ToLower(strings.TrimSpace(cmd.PaymentMethod))
	cmd.TransactionID = strings.TrimSpace(cmd.TransactionID)

	if cmd.returning() {
		if !phonePattern.MatchString(cmd.CustomerPhone) {
			errs.Add("customerPhone", "must be a Bangladeshi mobile number")
		}
	} else {
		cmd.CustomerPhone = ""
		if c.Name == "" {
			errs.Add("customer.name", "is required")
		}
		if !phonePattern.MatchString(c.Phone) {
			errs.Add("customer.phone", "must be a Bangladeshi mobile number")
		}
		if c.Address == "" {
			errs.Add("customer.address", "is required")
		}
	}

	switch cmd.PaymentMethod {
	case domain.PaymentCOD:
		cmd.TransactionID = ""
	case domain.PaymentBkash, domain.PaymentNagad, domain.PaymentRocket:
		if cmd.TransactionID == "" {
			errs.Add("transactionId", "is required for mobile payments")
		} else if !transactionIDPattern.MatchString(cmd.TransactionID) {
			errs.Add("transactionId", "must be 6 to 20 letters or digits")
		}
	default:
		errs.Add("paymentMethod", "must be one of bkash, nagad, rocket, cod")
	}

	return cmd, errs.Err()
}

// priceLines turns cart lines into order lines. Plain products are priced
// from the catalog as it is now; package lines keep the price quoted when
// they were customized.
func (h *PlaceOrderHandler) priceLines(ctx context.Context, items []cartdomain.CartItem) ([]domain.OrderLine, error) {
	var ids []string
	for _, item := range items {
		if item.Product.IsPackage() {
			for _, c := range item.Product.Components {
				ids = append(ids, c.ProductID)
			}
			continue
		}
		ids = append(ids, item.Product.ProductID)
	}

	found, err := h.products.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	catalog := make(map[string]catalogdomain.Product, len(found))
	for _, p := range found {
		catalog[p.ProductID] = p
	}
	available := func(id string) (catalogdomain.Product, bool) {
		p, ok := catalog[id]
		return p, ok && p.Published
	}

	var errs catalogdomain.ValidationErrors
	var demandOrder []string
	demand := map[string]float64{}
	need := func(id string, kg float64) {
		if _, ok := demand[id]; !ok {
			demandOrder = append(demandOrder, id)
		}
		demand[id] += kg
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		line := domain.OrderLine{
			ProductID:       item.Product.ProductID,
			PackageID:       item.Product.PackageID,
			NameEn:          item.Product.NameEn,
			NameBn:          item.Product.NameBn,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
		}

		if item.Product.IsPackage() {
			for _, c := range item.Product.Components {
				if _, ok := available(c.ProductID); !ok {
					errs.Add(field, "%s contains %s, which is no longer available", item.Product.NameEn, c.ProductID)
				}
				need(c.ProductID, c.QuantityKg*item.Quantity)
			}
			line.Components = append([]cartdomain.Component(nil), item.Product.Components...)
			line.UnitPrice = item.Product.SalePrice
			applyBreakdown(&line, pricing.OrderTotal(item.Product.SalePrice, item.Quantity, 0))
			lines = append(lines, line)
			continue
		}

		p, ok := available(item.Product.ProductID)
		if !ok {
			errs.Add(field, "%s is no longer available", item.Product.NameEn)
			continue
		}
		switch {
		case item.Quantity < p.MinOrderKg:
			errs.Add(field, "%s must be at least %g kg", p.NameEn, p.MinOrderKg)
		case p.MaxOrderKg > 0 && item.Quantity > p.MaxOrderKg:
			errs.Add(field, "%s must not exceed %g kg", p.NameEn, p.MaxOrderKg)
		}
		need(p.ProductID, item.Quantity)

		line.NameEn, line.NameBn = p.NameEn, p.NameBn
		line.UnitPrice = p.BasePrice
		line.DiscountPercentage = p.DiscountPercentage
		applyBreakdown(&line, pricing.OrderTotal(p.BasePrice, item.Quantity, p.DiscountPercentage))
		lines = append(lines, line)
	}

	for _, id := range demandOrder {
		if p, ok := available(id); ok && demand[id] > p.StockKg {
			errs.Add("stock."+id, "only %g kg of %s in stock", p.StockKg, p.NameEn)
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func applyBreakdown(line *domain.OrderLine, b pricing.Breakdown) {
	line.Subtotal = b.Subtotal
	line.Discount = b.Discount
	line.Total = b.Total
}

func newOrderID(now time.Time) string {
	return "MB-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

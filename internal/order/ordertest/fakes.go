// Package ordertest provides an in-memory order repository for tests.
package ordertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/machbazar/storefront/internal/order/domain"
)

// OrderRepository is an in-memory domain.OrderRepository
type OrderRepository struct {
	mu     sync.Mutex
	orders []domain.Order

	Err error
}

func NewOrderRepository(orders ...domain.Order) *OrderRepository {
	r := &OrderRepository{}
	for i := range orders {
		o := orders[i]
		o.ID = uint(i + 1)
		r.orders = append(r.orders, o)
	}
	return r
}

// Get returns a copy of the stored order, or nil
func (r *OrderRepository) Get(orderID string) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderID == orderID {
			found := o
			return &found
		}
	}
	return nil
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	order.ID = uint(len(r.orders) + 1)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *OrderRepository) FindByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, o := range r.orders {
		if o.OrderID == orderID {
			found := o
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	matched := []domain.Order{}
	for _, o := range r.orders {
		if filter.Status == "" || o.Status == filter.Status {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := min(filter.Offset, len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

func (r *OrderRepository) Transition(_ context.Context, orderID string, t domain.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.orders {
		o := &r.orders[i]
		if o.OrderID != orderID {
			continue
		}
		if o.Status != t.From {
			return domain.ErrInvalidTransition
		}
		o.Status = t.To
		o.UpdatedAt = t.At
		if t.To == domain.StatusVerified || t.To == domain.StatusRejected {
			at := t.At
			o.VerificationNote = t.Note
			o.VerifiedBy = t.By
			o.VerifiedAt = &at
		}
		return nil
	}
	return domain.ErrNotFound
}

func (r *OrderRepository) ExpirePending(_ context.Context, cutoff time.Time, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for i := range r.orders {
		o := &r.orders[i]
		if o.Status == domain.StatusPendingVerification && o.PaymentMethod != domain.PaymentCOD && o.CreatedAt.Before(cutoff) {
			o.Status = domain.StatusExpired
			o.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

// ApplyStockOnce flags the order, runs apply without holding the lock, and
// clears the flag again when apply fails
func (r *OrderRepository) ApplyStockOnce(ctx context.Context, orderID string, apply func(ctx context.Context) error) (bool, error) {
	if ok, err := r.setStockApplied(orderID, false, true); !ok || err != nil {
		return false, err
	}
	if err := apply(ctx); err != nil {
		if _, rerr := r.setStockApplied(orderID, true, false); rerr != nil {
			return false, rerr
		}
		return false, err
	}
	return true, nil
}

func (r *OrderRepository) setStockApplied(orderID string, from, to bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for i := range r.orders {
		o := &r.orders[i]
		if o.OrderID == orderID && o.Status == domain.StatusVerified && o.StockApplied == from {
			o.StockApplied = to
			return true, nil
		}
	}
	return false, nil
}

func (r *OrderRepository) FindCustomerByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var found *domain.Order
	for i := range r.orders {
		o := &r.orders[i]
		if o.Customer.Kind != domain.CustomerPopulated || o.Customer.Customer == nil || o.Customer.Customer.Phone != phone {
			continue
		}
		if found == nil || o.CreatedAt.After(found.CreatedAt) {
			found = o
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	c := *found.Customer.Customer
	return &c, nil
}

func (r *OrderRepository) Stats(context.Context) (*domain.OrderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	stats := &domain.OrderStats{ByStatus: map[string]int64{}}
	for _, status := range domain.Statuses {
		stats.ByStatus[status] = 0
	}
	for _, o := range r.orders {
		stats.ByStatus[o.Status]++
		stats.TotalOrders++
		if o.Status == domain.StatusVerified {
			stats.VerifiedRevenue += o.Total
		}
	}
	return stats, nil
}

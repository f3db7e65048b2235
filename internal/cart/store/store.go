// Package store implements the shopping cart as an in-memory snapshot that is
// written through to a key-value slot after every mutation.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// Store owns one cart. Every mutation builds a new snapshot and swaps it in
// whole, then persists it. Persistence failures are logged and ignored: the
// in-memory cart stays authoritative. Writers in other processes sharing the
// same key are not coordinated; the last one to persist wins.
type Store struct {
	mu      sync.RWMutex
	key     string
	storage domain.Storage
	cart    domain.Cart
	now     func() time.Time
}

// Option customizes a Store
type Option func(*Store)

// WithClock overrides time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open rehydrates the cart stored under key. A missing, unreadable or
// corrupt slot yields an empty cart; Open never fails.
func Open(ctx context.Context, storage domain.Storage, key string, opts ...Option) *Store {
	s := &Store{
		key:     key,
		storage: storage,
		cart:    domain.NewCart(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := storage.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrSlotEmpty):
		return s
	case err != nil:
		logger.Warn(ctx).Err(err).Str("cart_key", key).Msg("Failed to read cart, starting empty")
		return s
	}

	cart, err := Decode(data)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cart_key", key).Msg("Failed to parse cart, starting empty")
		return s
	}
	s.cart = cart
	return s
}

// Key returns the storage key of this cart
func (s *Store) Key() string {
	return s.key
}

// Cart returns a copy of the current snapshot
func (s *Store) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// AddToCart merges quantity into the line for product.ProductID, or appends a
// new line. On merge, opts replaces the line's options; nil keeps them.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity float64, opts *domain.SelectedOptions) domain.Cart {
	return s.mutate(ctx, func(c *domain.Cart, now time.Time) {
		if i := c.IndexOf(product.ProductID); i >= 0 {
			c.Items[i].Quantity += quantity
			if opts != nil {
				c.Items[i].SelectedOptions = *opts
			}
			return
		}

		item := domain.CartItem{
			Product:  product,
			Quantity: quantity,
			AddedAt:  now,
		}
		if opts != nil {
			item.SelectedOptions = *opts
		}
		c.Items = append(c.Items, item)
	})
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line. Bounds such as MinOrderKg are the caller's concern.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity float64) domain.Cart {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	return s.mutate(ctx, func(c *domain.Cart, _ time.Time) {
		if i := c.IndexOf(productID); i >= 0 {
			c.Items[i].Quantity = quantity
		}
	})
}

// RemoveItem deletes the line for productID; absent ids are ignored
func (s *Store) RemoveItem(ctx context.Context, productID string) domain.Cart {
	return s.mutate(ctx, func(c *domain.Cart, _ time.Time) {
		if i := c.IndexOf(productID); i >= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
	})
}

// ClearCart resets to the empty cart
func (s *Store) ClearCart(ctx context.Context) domain.Cart {
	return s.mutate(ctx, func(c *domain.Cart, _ time.Time) {
		c.Items = []domain.CartItem{}
	})
}

// Discard empties the cart and removes its slot instead of persisting an
// empty snapshot. A failed delete is logged; the next Open of the key then
// finds the old snapshot.
func (s *Store) Discard(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.NewCart()
	s.cart.LastUpdated = s.now()
	if err := s.storage.Delete(ctx, s.key); err != nil {
		logger.Error(ctx).Err(err).Str("cart_key", s.key).Msg("Failed to delete cart")
	}
	return s.cart.Clone()
}

// IsInCart reports whether a line exists for productID
func (s *Store) IsInCart(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.IndexOf(productID) >= 0
}

// GetItemQuantity returns the quantity of the line for productID, or 0
func (s *Store) GetItemQuantity(productID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.cart.IndexOf(productID); i >= 0 {
		return s.cart.Items[i].Quantity
	}
	return 0
}

func (s *Store) mutate(ctx context.Context, fn func(c *domain.Cart, now time.Time)) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next := s.cart.Clone()
	fn(&next, now)
	next.Recalculate()
	next.LastUpdated = now
	s.cart = next

	// Persisting under the lock keeps slot writes in mutation order
	s.persist(ctx, next)
	return next.Clone()
}

func (s *Store) persist(ctx context.Context, c domain.Cart) {
	data, err := Encode(c)
	if err == nil {
		err = s.storage.Put(ctx, s.key, data)
	}
	if err != nil {
		logger.Error(ctx).Err(err).Str("cart_key", s.key).Msg("Failed to persist cart")
	}
}

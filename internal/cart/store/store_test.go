package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/cart/domain"
)

type memStorage struct {
	mu     sync.Mutex
	slots  map[string][]byte
	putErr error
	getErr error
	delErr error
	puts   int
}

func newMemStorage() *memStorage {
	return &memStorage{slots: make(map[string][]byte)}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.slots[key]
	if !ok {
		return nil, domain.ErrSlotEmpty
	}
	return data, nil
}

func (m *memStorage) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.slots[key] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.slots, key)
	return nil
}

var (
	ilish = domain.Product{ProductID: "ilish-1kg", NameEn: "Hilsa", BasePrice: 500, DiscountPercentage: 10, SalePrice: 450, MinOrderKg: 0.5, MaxOrderKg: 5}
	rui   = domain.Product{ProductID: "rui", NameEn: "Rohu", BasePrice: 300, SalePrice: 300, MinOrderKg: 1, MaxOrderKg: 10}
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func assertDerived(t *testing.T, c domain.Cart) {
	t.Helper()
	var total, count float64
	for _, item := range c.Items {
		total += item.Product.SalePrice * item.Quantity
		count += item.Quantity
	}
	assert.InDelta(t, total, c.Total, 1e-9)
	assert.InDelta(t, count, c.ItemCount, 1e-9)
}

func TestAddToCart_NewLine(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k", WithClock(fixedClock()))

	c := s.AddToCart(ctx, ilish, 2, nil)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 900.0, c.Items[0].LineTotal())
	assert.Equal(t, 900.0, c.Total)
	assert.Equal(t, 2.0, c.ItemCount)
	assert.Equal(t, fixedClock()(), c.Items[0].AddedAt)
	assertDerived(t, c)
}

func TestAddToCart_MergesByProductID(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k")

	s.AddToCart(ctx, ilish, 1.5, &domain.SelectedOptions{CuttingSize: "small"})
	s.AddToCart(ctx, rui, 1, nil)
	c := s.AddToCart(ctx, ilish, 2, &domain.SelectedOptions{CuttingSize: "large", HeadCut: "remove"})

	require.Len(t, c.Items, 2)
	assert.Equal(t, 3.5, s.GetItemQuantity(ilish.ProductID))
	assert.Equal(t, domain.SelectedOptions{CuttingSize: "large", HeadCut: "remove"}, c.Items[0].SelectedOptions)
	assertDerived(t, c)
}

func TestAddToCart_MergeWithoutOptionsKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k")

	s.AddToCart(ctx, ilish, 1, &domain.SelectedOptions{CuttingStyle: "curry"})
	c := s.AddToCart(ctx, ilish, 1, nil)

	assert.Equal(t, "curry", c.Items[0].SelectedOptions.CuttingStyle)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k")
	s.AddToCart(ctx, ilish, 1, nil)

	c := s.UpdateQuantity(ctx, ilish.ProductID, 4)
	assert.Equal(t, 4.0, c.Items[0].Quantity)
	assertDerived(t, c)

	// unknown ids are ignored
	c = s.UpdateQuantity(ctx, "missing", 3)
	assert.Len(t, c.Items, 1)
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []float64{0, -5} {
		ctx := context.Background()
		s := Open(ctx, newMemStorage(), "k")
		s.AddToCart(ctx, ilish, 1, nil)
		s.AddToCart(ctx, rui, 2, nil)

		c := s.UpdateQuantity(ctx, ilish.ProductID, q)

		assert.False(t, s.IsInCart(ilish.ProductID), "quantity %v", q)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 600.0, c.Total)
		assertDerived(t, c)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k")
	s.AddToCart(ctx, ilish, 1, nil)
	s.AddToCart(ctx, rui, 1, nil)

	c := s.RemoveItem(ctx, "missing")
	assert.Len(t, c.Items, 2)

	c = s.RemoveItem(ctx, rui.ProductID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 0.0, s.GetItemQuantity(rui.ProductID))

	c = s.ClearCart(ctx)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.ItemCount)
}

func TestCartReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemStorage(), "k")
	s.AddToCart(ctx, ilish, 1, nil)

	c := s.Cart()
	c.Items[0].Quantity = 99

	assert.Equal(t, 1.0, s.GetItemQuantity(ilish.ProductID))
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()

	s := Open(ctx, storage, "session-1")
	s.AddToCart(ctx, ilish, 2, &domain.SelectedOptions{CuttingSize: "medium"})
	want := s.AddToCart(ctx, rui, 1.25, nil)

	reloaded := Open(ctx, storage, "session-1").Cart()

	assert.Equal(t, want.Total, reloaded.Total)
	assert.Equal(t, want.ItemCount, reloaded.ItemCount)
	require.Len(t, reloaded.Items, 2)
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Product, reloaded.Items[i].Product)
		assert.Equal(t, want.Items[i].Quantity, reloaded.Items[i].Quantity)
		assert.Equal(t, want.Items[i].SelectedOptions, reloaded.Items[i].SelectedOptions)
		assert.True(t, want.Items[i].AddedAt.Equal(reloaded.Items[i].AddedAt))
	}
	assert.True(t, want.LastUpdated.Equal(reloaded.LastUpdated))
}

func TestPersistence_EveryMutationWrites(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	s := Open(ctx, storage, "k")

	s.AddToCart(ctx, ilish, 1, nil)
	s.UpdateQuantity(ctx, ilish.ProductID, 2)
	s.RemoveItem(ctx, ilish.ProductID)
	s.ClearCart(ctx)

	assert.Equal(t, 4, storage.puts)
}

func TestOpen_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	broken := newMemStorage()
	broken.getErr = errors.New("connection refused")
	assert.Empty(t, Open(ctx, broken, "k").Cart().Items)

	corrupt := newMemStorage()
	corrupt.slots["k"] = []byte("{not json")
	assert.Empty(t, Open(ctx, corrupt, "k").Cart().Items)

	badDate := newMemStorage()
	badDate.slots["k"] = []byte(`{"items":[{"product":{"productId":"x"},"quantity":1,"addedAt":"yesterday-ish"}]}`)
	assert.Empty(t, Open(ctx, badDate, "k").Cart().Items)
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.putErr = errors.New("disk full")
	s := Open(ctx, storage, "k")

	c := s.AddToCart(ctx, ilish, 2, nil)

	assert.Equal(t, 900.0, c.Total)
	assert.True(t, s.IsInCart(ilish.ProductID))
}

func TestDecode_RepairsLegacyDates(t *testing.T) {
	data := []byte(`{
		"items": [
			{"product": {"productId": "ilish-1kg", "salePrice": 450}, "quantity": 2,
			 "addedAt": "Fri Jul 03 2015 18:04:07 GMT+0100 (GMT Daylight Time)"}
		],
		"total": 12345,
		"itemCount": 7,
		"lastUpdated": "2015-07-03 18:10:00"
	}`)

	c, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2015, c.Items[0].AddedAt.Year())
	assert.Equal(t, time.July, c.Items[0].AddedAt.Month())
	assert.Equal(t, 2015, c.LastUpdated.Year())
	// derived fields are recomputed, not trusted
	assert.Equal(t, 900.0, c.Total)
	assert.Equal(t, 2.0, c.ItemCount)
}

func TestDiscard_RemovesSlot(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	s := Open(ctx, storage, "k")
	s.AddToCart(ctx, ilish, 2, nil)
	require.Contains(t, storage.slots, "k")

	c := s.Discard(ctx)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.NotContains(t, storage.slots, "k")
	assert.Equal(t, 1, storage.puts, "discard does not write a snapshot")
	assert.Empty(t, Open(ctx, storage, "k").Cart().Items)
}

func TestDiscard_DeleteFailureKeepsMemoryEmpty(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	s := Open(ctx, storage, "k")
	s.AddToCart(ctx, ilish, 2, nil)
	storage.delErr = errors.New("connection refused")

	s.Discard(ctx)
	assert.False(t, s.IsInCart(ilish.ProductID))
}

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/cart/domain"
)

func TestSessions_RejectsMalformedIDs(t *testing.T) {
	sessions := NewSessions(newMemStorage())

	_, err := sessions.Open(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	err = sessions.Do(context.Background(), "", func(*Store) error { return nil })
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestSessions_DoSerializesWriters(t *testing.T) {
	storage := newMemStorage()
	sessions := NewSessions(storage)
	id := NewSessionID()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sessions.Do(context.Background(), id, func(st *Store) error {
				st.AddToCart(context.Background(), rui, 1, nil)
				return nil
			})
		}()
	}
	wg.Wait()

	st, err := sessions.Open(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 20.0, st.GetItemQuantity("rui"))
}

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/machbazar/storefront/internal/cart/domain"
)

var cartBucket = []byte("carts")

// BoltStorage keeps cart snapshots in a local bbolt file
type BoltStorage struct {
	db *bolt.DB
}

// OpenBoltStorage opens (or creates) the bbolt file at path
func OpenBoltStorage(path string) (*BoltStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cart directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cart file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cartBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cart bucket: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

func (s *BoltStorage) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(cartBucket).Get([]byte(key))
		if v == nil {
			return domain.ErrSlotEmpty
		}
		// v is only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

func (s *BoltStorage) Put(_ context.Context, key string, data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *BoltStorage) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close releases the file lock
func (s *BoltStorage) Close() error {
	return s.db.Close()
}

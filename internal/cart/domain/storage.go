package domain

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Storage.Get when nothing is stored under a key
var ErrSlotEmpty = errors.New("cart slot is empty")

// Storage is a durable key-value slot holding one serialized cart per key
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrInvalidSession is returned for cart session ids that are not UUIDs
var ErrInvalidSession = errors.New("invalid cart session")

package domain

import "context"

// Invalidator drops cached catalog responses after a write
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// NopInvalidator is used when no response cache is configured
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context) {}

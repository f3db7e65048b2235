package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/pkg/database"
)

type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository over db
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{})
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := database.Conn(ctx, r.db).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := database.Conn(ctx, r.db).Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	q := database.Conn(ctx, r.db).Model(&domain.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *GormOrderRepository) Transition(ctx context.Context, orderID string, t domain.Transition) error {
	updates := map[string]interface{}{
		"status":     t.To,
		"updated_at": t.At,
	}
	if t.To == domain.StatusVerified || t.To == domain.StatusRejected {
		updates["verification_note"] = t.Note
		updates["verified_by"] = t.By
		updates["verified_at"] = t.At
	}

	db := database.Conn(ctx, r.db)
	res := db.Model(&domain.Order{}).
		Where("order_id = ? AND status = ?", orderID, t.From).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&domain.Order{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidTransition
}

func (r *GormOrderRepository) ExpirePending(ctx context.Context, cutoff time.Time, at time.Time) (int64, error) {
	res := database.Conn(ctx, r.db).Model(&domain.Order{}).
		Where("status = ? AND payment_method <> ? AND created_at < ?",
			domain.StatusPendingVerification, domain.PaymentCOD, cutoff).
		Updates(map[string]interface{}{
			"status":     domain.StatusExpired,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

// ApplyStockOnce flags a verified order and runs apply in one transaction.
// apply receives a context carrying the transaction so catalog writes join
// it; an error from apply rolls the flag back.
func (r *GormOrderRepository) ApplyStockOnce(ctx context.Context, orderID string, apply func(ctx context.Context) error) (bool, error) {
	marked := false
	err := database.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("order_id = ? AND status = ? AND stock_applied = ?", orderID, domain.StatusVerified, false).
			UpdateColumn("stock_applied", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		if err := apply(database.WithTx(ctx, tx)); err != nil {
			return err
		}
		marked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return marked, nil
}

// FindCustomerByPhone reads the contact out of the newest populated order
// for phone
func (r *GormOrderRepository) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var order domain.Order
	err := database.Conn(ctx, r.db).
		Where("customer->>'kind' = ? AND customer->'customer'->>'phone' = ?", domain.CustomerPopulated, phone).
		Order("created_at DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Customer.Customer == nil {
		return nil, domain.ErrNotFound
	}
	return order.Customer.Customer, nil
}

func (r *GormOrderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	var rows []struct {
		Status  string
		Count   int64
		Revenue float64
	}
	err := database.Conn(ctx, r.db).Model(&domain.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &domain.OrderStats{ByStatus: make(map[string]int64, len(domain.Statuses))}
	for _, status := range domain.Statuses {
		stats.ByStatus[status] = 0
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.TotalOrders += row.Count
		if row.Status == domain.StatusVerified {
			stats.VerifiedRevenue = row.Revenue
		}
	}
	return stats, nil
}

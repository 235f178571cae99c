package repository

import (
	"context"
	"time"

	"phonemall-payments/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByReference(ctx context.Context, referenceNo string) (*model.Order, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, referenceNo string) error
	IsPaid(ctx context.Context, referenceNo string) (bool, error)
	GetOrderItems(ctx context.Context, referenceNo string) ([]*model.OrderItem, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByReference(ctx context.Context, referenceNo string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("reference_no = ?", referenceNo).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// MarkPaid transitions CREATED -> PAID. Already-paid orders are left alone,
// which makes webhook replays and repeated verification calls harmless.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, referenceNo string) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("reference_no = ? AND status = ?", referenceNo, "CREATED").
		Updates(map[string]interface{}{
			"status":     "PAID",
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepoImpl) IsPaid(ctx context.Context, referenceNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("reference_no = ?", referenceNo).
		Where("status = ?", "PAID").
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, referenceNo string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_reference = ?", referenceNo).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

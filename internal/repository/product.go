package repository

import (
	"context"

	"phonemall-payments/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindAvailable(ctx context.Context, productIDs []string) ([]*model.Product, error)
	ListAvailable(ctx context.Context) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

// Seed loads the storefront's sample catalog. Prices are in satang.
func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "1", Name: "iPhone 15 Pro Max", Brand: "Apple", Condition: "new", Storage: "256GB", Color: "Natural Titanium", Price: 4590000, Currency: "THB", Status: model.ProductAvailable, Description: "The ultimate iPhone with titanium design, A17 Pro chip, and professional camera system."},
		{ID: "2", Name: "Samsung Galaxy S24 Ultra", Brand: "Samsung", Condition: "new", Storage: "512GB", Color: "Titanium Black", Price: 4290000, Currency: "THB", Status: model.ProductAvailable, Description: "Premium Android flagship with S Pen, incredible cameras, and AI-powered features."},
		{ID: "3", Name: "Google Pixel 8 Pro", Brand: "Google", Condition: "new", Storage: "128GB", Color: "Obsidian", Price: 3290000, Currency: "THB", Status: model.ProductAvailable, Description: "Pure Android experience with advanced AI photography and 7 years of updates."},
		{ID: "4", Name: "Xiaomi 14 Ultra", Brand: "Xiaomi", Condition: "new", Storage: "256GB", Color: "Black", Price: 2890000, Currency: "THB", Status: model.ProductAvailable, Description: "Flagship performance with Leica cameras and premium materials at great value."},
		{ID: "5", Name: "OnePlus 12", Brand: "OnePlus", Condition: "new", Storage: "256GB", Color: "Silky Black", Price: 2490000, Currency: "THB", Status: model.ProductAvailable, Description: "Fast performance, smooth display, and rapid charging technology."},
		{ID: "6", Name: "iPhone 14 Pro", Brand: "Apple", Condition: "used", Storage: "128GB", Color: "Deep Purple", Price: 2990000, Currency: "THB", Status: model.ProductAvailable, Description: "Excellent condition iPhone 14 Pro with Dynamic Island and pro camera system."},
		{ID: "7", Name: "Samsung Galaxy S23", Brand: "Samsung", Condition: "used", Storage: "256GB", Color: "Phantom Black", Price: 1990000, Currency: "THB", Status: model.ProductAvailable, Description: "Like-new Galaxy S23 with exceptional camera and display quality."},
		{ID: "8", Name: "iPhone 13", Brand: "Apple", Condition: "used", Storage: "128GB", Color: "Pink", Price: 2290000, Currency: "THB", Status: model.ProductAvailable, Description: "Certified pre-owned iPhone 13 in excellent condition with full warranty."},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAvailable(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Where("status = ?", model.ProductAvailable).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListAvailable(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ProductAvailable).
		Order("id").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

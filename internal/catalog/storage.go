package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, cateID string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, cateID, name string) error
	DeleteCategory(ctx context.Context, cateID string) error

	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProducts(ctx context.Context, cateID string) ([]Product, error)
	FindProducts(ctx context.Context, productIDs []string) (map[string]Product, error)
	UpdateProduct(ctx context.Context, productID string, fields map[string]interface{}) error
	DeleteProduct(ctx context.Context, productID string) error
}

type CatalogStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &CatalogStorage{
		db: db,
	}
}

func (s *CatalogStorage) CreateCategory(ctx context.Context, category *Category) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(category)
	if result.Error != nil {
		return fmt.Errorf("failed to create category - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errCategoryExists)
	}
	return nil
}

func (s *CatalogStorage) GetCategory(ctx context.Context, cateID string) (*Category, error) {
	var category Category
	err := s.db.WithContext(ctx).Where("cate_id = ?", cateID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errCategoryNotFound)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CatalogStorage) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.db.WithContext(ctx).Order("cate_name").Find(&categories).Error; err != nil {
		return []Category{}, err
	}
	return categories, nil
}

func (s *CatalogStorage) UpdateCategory(ctx context.Context, cateID, name string) error {
	result := s.db.WithContext(ctx).Model(&Category{}).Where("cate_id = ?", cateID).Update("cate_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errCategoryNotFound)
	}
	return nil
}

// DeleteCategory refuses to orphan products: the reference check and the delete share a transaction.
func (s *CatalogStorage) DeleteCategory(ctx context.Context, cateID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Product{}).Where("cate_id = ?", cateID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict(errCategoryInUse)
		}

		result := tx.Where("cate_id = ?", cateID).Delete(&Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(errCategoryNotFound)
		}
		return nil
	})
}

func (s *CatalogStorage) CreateProduct(ctx context.Context, product *Product) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(product)
	if result.Error != nil {
		return fmt.Errorf("failed to create product - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errProductExists)
	}
	return nil
}

func (s *CatalogStorage) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errProductNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogStorage) ListProducts(ctx context.Context, cateID string) ([]Product, error) {
	query := s.db.WithContext(ctx).Order("product_name")
	if cateID != "" {
		query = query.Where("cate_id = ?", cateID)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return []Product{}, err
	}
	return products, nil
}

// FindProducts returns the existing products keyed by id. Missing ids are simply absent.
func (s *CatalogStorage) FindProducts(ctx context.Context, productIDs []string) (map[string]Product, error) {
	found := make(map[string]Product, len(productIDs))
	if len(productIDs) == 0 {
		return found, nil
	}

	var products []Product
	if err := s.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		found[p.ProductID] = p
	}
	return found, nil
}

func (s *CatalogStorage) UpdateProduct(ctx context.Context, productID string, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&Product{}).Where("product_id = ?", productID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errProductNotFound)
	}
	return nil
}

func (s *CatalogStorage) DeleteProduct(ctx context.Context, productID string) error {
	result := s.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errProductNotFound)
	}
	return nil
}

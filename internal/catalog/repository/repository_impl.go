package repository

import (
	"context"

	"github.com/smallbiznis/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, name, slug, description, category, price, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Category,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, category, price, stock, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

// Replace overwrites every mutable column in one statement so concurrent
// updates serialize at the row and partial replacements are never visible.
func (r *repo) Replace(ctx context.Context, db *gorm.DB, product *domain.Product) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, slug = ?, description = ?, category = ?, price = ?, stock = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Slug,
		product.Description,
		product.Category,
		product.Price,
		product.Stock,
		product.UpdatedAt,
		product.ID,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var products []domain.Product
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]domain.Product, error) {
	var products []domain.Product
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("LOWER(category) = LOWER(?)", category).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByName is exact-match on purpose: the search contract is literal
// case-insensitive equality, not substring.
func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) ([]domain.Product, error) {
	var products []domain.Product
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) CountOrderItems(ctx context.Context, db *gorm.DB, productID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM order_items WHERE product_id = ?`,
		productID,
	).Scan(&count).Error
	return count, err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcaster/internal/common"
	"shopcaster/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Product, error)
	// UpdateScrapedFields overwrites the whole scraped-data group of the row,
	// including fields the new scrape left absent.
	UpdateScrapedFields(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, user_id, url, title, description, price, image_url,
	       vendor, product_type, variants, options, created_at`

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (user_id, url)
	          VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.URL).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	p.Variants = []model.Variant{}
	p.Options = []model.Option{}
	return nil
}

func (r *pgProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProductRepository) ListByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProductRepository.ListByUser scan: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByUser rows.Err: %w", err)
	}
	return products, nil
}

func (r *pgProductRepository) UpdateScrapedFields(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET
	            title = $1, description = $2, price = $3, image_url = $4,
	            vendor = $5, product_type = $6, variants = $7, options = $8
	          WHERE id = $9`
	_, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Price, p.ImageURL, p.Vendor, p.ProductType,
		model.EncodeVariants(p.Variants), model.EncodeOptions(p.Options), p.ID,
	)
	if err != nil {
		return fmt.Errorf("pgProductRepository.UpdateScrapedFields: %w", err)
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	p := &model.Product{}
	var variants, options sql.NullString
	err := row.Scan(
		&p.ID, &p.UserID, &p.URL, &p.Title, &p.Description, &p.Price,
		&p.ImageURL, &p.Vendor, &p.ProductType, &variants, &options, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Variants = model.DecodeVariants(nullStringPtr(variants))
	p.Options = model.DecodeOptions(nullStringPtr(options))
	return p, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

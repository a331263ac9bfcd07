package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopcaster/internal/common"
	"shopcaster/internal/domain/model"
	"shopcaster/internal/domain/repository"
	"shopcaster/internal/platform/shopify"
)

type ProductService struct {
	productRepo repository.ProductRepository
	shopify     *shopify.Client
}

func NewProductService(productRepo repository.ProductRepository, shopifyClient *shopify.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shopify:     shopifyClient,
	}
}

// Create registers a URL under the caller. The URL is only required to be a
// non-empty string; reachability is checked at scrape time.
func (s *ProductService) Create(ctx context.Context, userID int64, url string) (*model.Product, error) {
	if strings.TrimSpace(url) == "" {
		return nil, common.Errorf("a valid URL is required: %w", common.ErrValidation)
	}

	product := &model.Product{
		UserID: userID,
		URL:    url,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, userID int64) ([]model.Product, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Delete(ctx context.Context, userID, productID int64) error {
	if _, err := s.GetOwned(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("product not found: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// GetOwned loads a product only if it exists and belongs to userID. An
// ownership mismatch answers not-found, identical to true absence, so callers
// cannot probe for other users' products.
func (s *ProductService) GetOwned(ctx context.Context, userID, productID int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("product not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product.UserID != userID {
		return nil, common.Errorf("product not found: %w", common.ErrNotFound)
	}
	return product, nil
}

// Scrape fetches the product's public JSON and replaces the stored scraped
// fields wholesale. A failed fetch is terminal for this call; nothing is
// retried and nothing is persisted.
func (s *ProductService) Scrape(ctx context.Context, userID, productID int64) (*model.Product, error) {
	product, err := s.GetOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	scraped, err := s.shopify.FetchProduct(ctx, product.URL)
	if err != nil {
		return nil, common.Errorf("could not fetch product data: %w (%v)", common.ErrUpstream, err)
	}

	applyScrapedFields(product, scraped)

	if err := s.productRepo.UpdateScrapedFields(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to store scraped product: %w", err)
	}
	return product, nil
}

// applyScrapedFields maps the upstream document onto the product row,
// overwriting every scraped field. Missing upstream fields become nil.
func applyScrapedFields(product *model.Product, scraped *shopify.Product) {
	product.Title = optional(scraped.Title)

	// Description prefers the rich-text body, falls back to the plain
	// description, and defaults to empty rather than absent.
	description := scraped.BodyHTML
	if description == "" {
		description = scraped.Description
	}
	product.Description = &description

	var price string
	if len(scraped.Variants) > 0 {
		price = string(scraped.Variants[0].Price)
	}
	product.Price = optional(price)

	var imageURL string
	if scraped.Image != nil && scraped.Image.Src != "" {
		imageURL = scraped.Image.Src
	} else if len(scraped.Images) > 0 {
		imageURL = scraped.Images[0].Src
	}
	product.ImageURL = optional(imageURL)

	product.Vendor = optional(scraped.Vendor)
	product.ProductType = optional(scraped.ProductType)

	variants := make([]model.Variant, 0, len(scraped.Variants))
	for _, v := range scraped.Variants {
		variants = append(variants, model.Variant{
			ID:        v.ID,
			Title:     v.Title,
			SKU:       v.SKU,
			Price:     string(v.Price),
			Available: v.Available,
			Option1:   v.Option1,
			Option2:   v.Option2,
			Option3:   v.Option3,
		})
	}
	product.Variants = variants

	options := make([]model.Option, 0, len(scraped.Options))
	for _, o := range scraped.Options {
		options = append(options, model.Option{
			Name:   o.Name,
			Values: o.Values,
		})
	}
	product.Options = options
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

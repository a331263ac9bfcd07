package model

import (
	"encoding/json"
	"time"
)

// Product is a Shopify product registered by a user. The scraped fields are
// nil until the first successful scrape and are replaced wholesale on every
// scrape after that.
type Product struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	URL         string    `json:"url"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *string   `json:"price,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Vendor      *string   `json:"vendor,omitempty"`
	ProductType *string   `json:"product_type,omitempty"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
	CreatedAt   time.Time `json:"created_at"`
}

// Variant is one purchasable variation of a product. Price stays text to
// tolerate whatever currency formatting the store uses.
type Variant struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	SKU       string  `json:"sku"`
	Price     string  `json:"price"`
	Available bool    `json:"available"`
	Option1   *string `json:"option1,omitempty"`
	Option2   *string `json:"option2,omitempty"`
	Option3   *string `json:"option3,omitempty"`
}

// Option is a named axis of variation (e.g. Size) with its ordered values.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variants and options live in the database as opaque JSON text. The codec
// below is the only place that text is produced or consumed; decoding is
// tolerant by contract — empty, NULL or malformed blobs come back as an empty
// slice, never an error.

func EncodeVariants(variants []Variant) *string {
	return encodeBlob(len(variants) == 0, variants)
}

func DecodeVariants(raw *string) []Variant {
	var variants []Variant
	if !decodeBlob(raw, &variants) || variants == nil {
		return []Variant{}
	}
	return variants
}

func EncodeOptions(options []Option) *string {
	return encodeBlob(len(options) == 0, options)
}

func DecodeOptions(raw *string) []Option {
	var options []Option
	if !decodeBlob(raw, &options) || options == nil {
		return []Option{}
	}
	return options
}

func encodeBlob(empty bool, v interface{}) *string {
	if empty {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func decodeBlob(raw *string, out interface{}) bool {
	if raw == nil || *raw == "" {
		return false
	}
	return json.Unmarshal([]byte(*raw), out) == nil
}

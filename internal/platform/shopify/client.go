// Package shopify fetches the public JSON representation of a Shopify product
// page. Stores expose it by appending ".json" to the product URL; some wrap
// the document in {"product": {...}} and some return it bare.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Product is the subset of the Shopify product document this application
// consumes. Absent fields decode to their zero values.
type Product struct {
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Image       *Image    `json:"image"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
}

type Image struct {
	Src string `json:"src"`
}

type Variant struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	SKU       string  `json:"sku"`
	Price     Amount  `json:"price"`
	Available bool    `json:"available"`
	Option1   *string `json:"option1"`
	Option2   *string `json:"option2"`
	Option3   *string `json:"option3"`
}

// Amount is a price kept as text. Stores serialize prices either as JSON
// strings or as bare numbers; both decode to the verbatim textual form.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// DataURL derives the canonical JSON endpoint for a product page URL: the
// query string is dropped and a ".json" suffix is appended unless already
// present.
func DataURL(productURL string) string {
	clean := productURL
	if i := strings.IndexByte(clean, '?'); i >= 0 {
		clean = clean[:i]
	}
	if strings.HasSuffix(clean, ".json") {
		return clean
	}
	return clean + ".json"
}

// FetchProduct retrieves and normalizes the product document behind
// productURL. A non-2xx upstream status is an error; there are no retries.
func (c *Client) FetchProduct(ctx context.Context, productURL string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DataURL(productURL), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching product JSON: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading product JSON: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, DataURL(productURL))
	}

	return decodeProduct(body)
}

// decodeProduct resolves the wrapped-or-bare ambiguity once so everything
// downstream sees a single shape.
func decodeProduct(body []byte) (*Product, error) {
	var envelope struct {
		Product *Product `json:"product"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Product != nil {
		return envelope.Product, nil
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("decoding product JSON: %w", err)
	}
	return &product, nil
}

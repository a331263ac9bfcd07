package service

// In-memory repository fakes used by the service tests. They mirror the
// Postgres implementations' error contracts: ErrNotFound on missing rows,
// ErrConflict on duplicate emails, and the variant/option codec applied at
// the storage boundary.

import (
	"context"
	"sync"
	"time"

	"shopcaster/internal/common"
	"shopcaster/internal/domain/model"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return common.Errorf("email is already in use: %w", common.ErrConflict)
		}
	}
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := user
	return &u, nil
}

type memProductRow struct {
	product  model.Product
	variants *string
	options  *string
}

type memProductRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]memProductRow
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: map[int64]memProductRow{}}
}

func (r *memProductRepo) Create(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	p.CreatedAt = time.Unix(r.seq, 0) // strictly increasing creation order
	p.Variants = []model.Variant{}
	p.Options = []model.Option{}
	r.rows[p.ID] = memProductRow{product: *p}
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p := row.product
	p.Variants = model.DecodeVariants(row.variants)
	p.Options = model.DecodeOptions(row.options)
	return &p, nil
}

func (r *memProductRepo) ListByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := []model.Product{}
	for id := r.seq; id >= 1; id-- { // newest first
		row, ok := r.rows[id]
		if !ok || row.product.UserID != userID {
			continue
		}
		p := row.product
		p.Variants = model.DecodeVariants(row.variants)
		p.Options = model.DecodeOptions(row.options)
		products = append(products, p)
	}
	return products, nil
}

func (r *memProductRepo) UpdateScrapedFields(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[p.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored := row.product
	stored.Title = p.Title
	stored.Description = p.Description
	stored.Price = p.Price
	stored.ImageURL = p.ImageURL
	stored.Vendor = p.Vendor
	stored.ProductType = p.ProductType
	r.rows[p.ID] = memProductRow{
		product:  stored,
		variants: model.EncodeVariants(p.Variants),
		options:  model.EncodeOptions(p.Options),
	}
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

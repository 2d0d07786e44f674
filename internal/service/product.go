package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"famick/internal/lookup"
	"famick/internal/model"
	"famick/internal/repository"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("not found")
)

// ProductListResult is the service-level DTO for paginated products.
type ProductListResult struct {
	Items []model.Product `json:"data"`
	Total int             `json:"total"`
}

// ProductService defines the use cases for the product catalog, including
// barcode lookup through the provider pipeline.
type ProductService interface {
	// Create stores a new catalog product for the tenant.
	Create(ctx context.Context, tenantID string, p *model.Product) (*model.Product, error)

	// Get returns a single product by its ID.
	Get(ctx context.Context, tenantID, id string) (*model.Product, error)

	// List returns products using limit/offset and a total count.
	List(ctx context.Context, tenantID string, limit, offset int) (*ProductListResult, error)

	// Delete removes a product by ID.
	Delete(ctx context.Context, tenantID, id string) error

	// LookupBarcode resolves a barcode through the lookup pipeline: the
	// tenant's own catalog first, then the external providers, merged
	// first-wins. Returns ErrNotFound when no provider has data.
	LookupBarcode(ctx context.Context, tenantID, barcode string) (*lookup.ProductInfo, error)
}

type productService struct {
	repo     repository.ProductRepository
	external []lookup.Provider
}

// NewProductService constructs a new ProductService. The external providers
// are consulted in the given order after the local catalog.
func NewProductService(repo repository.ProductRepository, external ...lookup.Provider) ProductService {
	return &productService{repo: repo, external: external}
}

func (s *productService) Create(ctx context.Context, tenantID string, p *model.Product) (*model.Product, error) {
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	p.ID = uuid.New().String()
	p.TenantID = tenantID
	p.CreatedAt = time.Now().UTC()

	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return stored, nil
}

func (s *productService) Get(ctx context.Context, tenantID, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, tenantID string, limit, offset int) (*ProductListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, tenantID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *productService) Delete(ctx context.Context, tenantID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *productService) LookupBarcode(ctx context.Context, tenantID, barcode string) (*lookup.ProductInfo, error) {
	if barcode == "" {
		return nil, ErrIDRequired
	}

	// The local catalog is bound to the tenant per request; it always has
	// the highest priority in the merge.
	providers := make([]lookup.Provider, 0, len(s.external)+1)
	providers = append(providers, lookup.NewLocalCatalog(s.repo, tenantID))
	providers = append(providers, s.external...)

	info, err := lookup.NewPipeline(providers...).Lookup(ctx, barcode)
	if err != nil {
		if errors.Is(err, lookup.ErrNoResult) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return info, nil
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
	"github.com/go-playground/validator/v10"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Detail(ctx context.Context, id string) (*models.ProductDetail, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Browse(ctx context.Context, segment catalog.Segment, filter catalog.Filter) (*BrowseResult, error)
}

type BrowseResult struct {
	Segment  catalog.Segment  `json:"segment"`
	Filter   catalog.Filter   `json:"filter"`
	Facets   catalog.Facets   `json:"facets"`
	Products []models.Product `json:"products"`
	Groups   []catalog.Group  `json:"groups"`
}

type catalogService struct {
	client        backend.Client
	state         *state.Store
	validator     *validator.Validate
	imageFallback string
}

func NewCatalogService(client backend.Client, st *state.Store, imageFallback string) CatalogService {
	return &catalogService{
		client:        client,
		state:         st,
		validator:     validator.New(),
		imageFallback: imageFallback,
	}
}

// accept drops products the views cannot use and fills in missing images.
func (s *catalogService) accept(ctx context.Context, products []models.Product) []models.Product {

	out := make([]models.Product, 0, len(products))

	for _, p := range products {
		if err := s.validator.Struct(p); err != nil {
			logger.FromContext(ctx).Warn("Dropping invalid product", slog.String("productId", p.ID), slog.String("error", err.Error()))
			continue
		}
		out = append(out, s.withImage(p))
	}

	return out
}

func (s *catalogService) withImage(p models.Product) models.Product {
	if p.ImageURL == "" {
		p.ImageURL = s.imageFallback
	}

	return p
}

func (s *catalogService) ListProducts(ctx context.Context) ([]models.Product, error) {

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to fetch products", slog.String("error", err.Error()))
		return nil, backendFailure(err, "Failed to fetch products")
	}

	return s.accept(ctx, products), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	if strings.TrimSpace(id) == "" {
		return nil, errors.ValidationError("Product ID is required")
	}

	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, backendFailure(err, "Failed to fetch product details.")
	}

	if err := s.validator.Struct(product); err != nil {
		return nil, errors.NotFoundError("Product not found").WithDetail(err.Error())
	}

	p := s.withImage(*product)

	return &p, nil
}

func (s *catalogService) Detail(ctx context.Context, id string) (*models.ProductDetail, error) {

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	snap := s.state.Snapshot()

	detail := &models.ProductDetail{
		Product: *product,
		Sizes:   product.AvailableSizes(),
	}

	for _, item := range snap.Cart {
		if item.ID == product.ID {
			detail.InCart = true
			break
		}
	}

	for _, entry := range snap.Wishlist {
		if entry.ID == product.ID {
			detail.InWishlist = true
			break
		}
	}

	return detail, nil
}

// Search returns nothing for a blank query without calling the backend.
func (s *catalogService) Search(ctx context.Context, query string) ([]models.Product, error) {

	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}

	products, err := s.client.SearchProducts(ctx, query)
	if err != nil {
		recordAPIError(ctx, s.state, err)
		return nil, backendFailure(err, "Failed to fetch search results")
	}

	return s.accept(ctx, products), nil
}

func (s *catalogService) Browse(ctx context.Context, segment catalog.Segment, filter catalog.Filter) (*BrowseResult, error) {

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := catalog.Apply(products, segment, filter)

	return &BrowseResult{
		Segment:  segment,
		Filter:   filter,
		Facets:   catalog.FacetsFor(products, segment),
		Products: filtered,
		Groups:   catalog.GroupByCategory(filtered, segment),
	}, nil
}

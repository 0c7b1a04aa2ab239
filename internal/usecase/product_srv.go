package usecase

import (
	"context"
	"fmt"
	"time"

	"ecom-store/internal/data/entity"
	"ecom-store/internal/data/repository"
	"ecom-store/internal/dto/request"
	"ecom-store/internal/dto/response"
	"ecom-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	GetProducts(ctx context.Context, page *request.PaginatedRequest, filter *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productService struct {
	repo repository.ProductRepository
	log  *zap.Logger
}

func NewProductService(repo repository.ProductRepository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) GetProducts(ctx context.Context, page *request.PaginatedRequest, filter *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		s.log.Warn("Product list validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	limit := page.Limit()
	offset := page.Offset()

	products, err := s.repo.FindAll(ctx, limit, offset, filter.Query, filter.Category)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("page", page.Page),
			zap.Int("per_page", page.PerPage),
			zap.Stringp("q", filter.Query),
			zap.Stringp("category", filter.Category),
		)
		return nil, fmt.Errorf("get products: %w", err)
	}

	total, err := s.repo.CountAll(ctx, filter.Query, filter.Category)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("count products: %w", err)
	}

	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		productResponses[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(productResponses, page.Page, limit, total), nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := utils.ParseUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("failed to get product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Category:    entity.ProductCategory(req.Category),
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create product")
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product for update", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = entity.ProductCategory(*req.Category)
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := utils.ParseUUID(productID)
	if err != nil {
		return fmt.Errorf("invalid product ID")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID))
		return err
	}

	return nil
}

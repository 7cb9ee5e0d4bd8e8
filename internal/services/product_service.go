package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productsapi/internal/models"
	"productsapi/internal/repositories"

	"go.uber.org/zap"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. A nil publisher disables events.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ListProducts retrieves all products, most expensive first.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("get product", id, err)
	}
	return product, nil
}

// CreateProduct creates a new product. Availability defaults to true.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:         input.Name,
		Price:        input.Price,
		Availability: input.AvailabilityOr(true),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// ReplaceProduct overwrites name, price and availability of an existing product.
func (s *ProductService) ReplaceProduct(ctx context.Context, id uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("replace product", id, err)
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Availability = input.AvailabilityOr(product.Availability)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, wrap("replace product", id, err)
	}

	s.publish(ctx, EventProductUpdated, product.ID, product)
	return product, nil
}

// ToggleAvailability flips the availability flag. Two calls restore the original value.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("toggle availability", id, err)
	}

	product.Availability = !product.Availability

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, wrap("toggle availability", id, err)
	}

	s.publish(ctx, EventProductAvailabilityToggled, product.ID, product)
	return product, nil
}

// DeleteProduct permanently removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return wrap("delete product", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("delete product", id, err)
	}

	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

// publish never fails the calling operation; the mutation is already stored.
func (s *ProductService) publish(ctx context.Context, eventType string, id uint, product *models.Product) {
	event := ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish product event",
			zap.String("type", eventType),
			zap.Uint("product_id", id),
			zap.Error(err))
	}
}

func wrap(op string, id uint, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return err
	}
	return fmt.Errorf("%s %d: %w", op, id, err)
}

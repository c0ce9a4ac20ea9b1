package service

import (
	"context"
	"fmt"
	"strings"

	"shop-ledger/internal/imagestore"
	"shop-ledger/internal/model"
	"shop-ledger/internal/repository"

	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	uploader     imagestore.Uploader
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, uploader imagestore.Uploader, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		uploader:     uploader,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// List retrieves all customers, newest first.
func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.Debug().Int("count", len(customers)).Msg("retrieved customers")

	return customers, nil
}

// Create validates the request, uploads the image when present, and persists
// a new customer with its mandatory first product.
func (s *customerService) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, model.NewValidationError("customerName")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, model.NewValidationError("productName")
	}

	imageURL := s.uploadImage(ctx, req.Image)

	customer := model.NewCustomer(req.CustomerName, model.NewProduct(req.ProductName, req.Price, req.Status, imageURL))

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("name", req.CustomerName).Msg("failed to create customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().
		Str("customer_id", customer.ID).
		Str("product_id", customer.Products[0].ID).
		Msg("customer created")

	return customer, nil
}

// AddProduct appends a product to an existing customer.
func (s *customerService) AddProduct(ctx context.Context, customerID string, req *model.AddProductRequest) (*model.Customer, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, model.NewValidationError("productName")
	}

	imageURL := s.uploadImage(ctx, req.Image)

	product := model.NewProduct(req.ProductName, req.Price, req.Status, imageURL)

	if err := s.customerRepo.AppendProduct(ctx, customerID, product); err != nil {
		if err == model.ErrCustomerNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to append product")
		return nil, fmt.Errorf("failed to append product: %w", err)
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	s.logger.Info().
		Str("customer_id", customerID).
		Str("product_id", product.ID).
		Msg("product added")

	return customer, nil
}

// ChangePaymentStatus updates one product's payment status in place. The
// whole product list is read and written back, so two concurrent status
// changes on the same customer race and the later write wins.
func (s *customerService) ChangePaymentStatus(ctx context.Context, customerID, productID, newStatus string) ([]model.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, model.NewValidationError("productId")
	}
	if strings.TrimSpace(newStatus) == "" {
		return nil, model.NewValidationError("newStatus")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	found := false
	for i := range customer.Products {
		if customer.Products[i].ID == productID {
			customer.Products[i].Status = model.NormalizeStatus(newStatus)
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	if err := s.customerRepo.ReplaceProducts(ctx, customerID, customer.Products); err != nil {
		if err == model.ErrCustomerNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to update payment status")
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.logger.Info().
		Str("customer_id", customerID).
		Str("product_id", productID).
		Str("status", string(model.NormalizeStatus(newStatus))).
		Msg("payment status changed")

	return customer.Products, nil
}

// Delete removes a customer. Unknown IDs delete nothing and report success.
func (s *customerService) Delete(ctx context.Context, customerID string) error {
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info().Str("customer_id", customerID).Msg("customer deleted")

	return nil
}

// uploadImage stores the uploaded file and returns its URL. Upload failure is
// never fatal: the request proceeds with the placeholder URL.
func (s *customerService) uploadImage(ctx context.Context, image *model.ImageUpload) string {
	if image == nil || len(image.Data) == 0 {
		return model.PlaceholderImageURL
	}

	url, err := s.uploader.Upload(ctx, image.Filename, image.Data)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("filename", image.Filename).
			Msg("image upload failed, using placeholder")
		return model.PlaceholderImageURL
	}

	return url
}

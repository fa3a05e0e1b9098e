package application

import (
	"context"
	"fmt"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
)

// CatalogService handles client and product use cases
type CatalogService struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	logger   *logging.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(clients domain.ClientRepository, products domain.ProductRepository, logger *logging.Logger) *CatalogService {
	return &CatalogService{
		clients:  clients,
		products: products,
		logger:   logger,
	}
}

// CreateClient creates a client
func (s *CatalogService) CreateClient(ctx context.Context, cmd CreateClientCommand) (*ClientDTO, error) {
	client := domain.NewClient(cmd.Name, cmd.ContactName, cmd.ContactEmail, cmd.ContactPhone, cmd.BillingAddress, cmd.ABN)

	if err := s.clients.Save(ctx, client); err != nil {
		s.logger.WithError(err).Error("Failed to save client", "name", cmd.Name)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("Created client", "clientId", client.ID.Hex(), "name", client.Name)
	return ToClientDTO(client), nil
}

// GetClient retrieves a client by ID
func (s *CatalogService) GetClient(ctx context.Context, id string) (*ClientDTO, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, errors.ErrNotFoundWithID("client", id)
	}
	return ToClientDTO(client), nil
}

// ListClients lists clients with pagination
func (s *CatalogService) ListClients(ctx context.Context, page api.PageRequest) (api.PageResponse[*ClientDTO], error) {
	clients, total, err := s.clients.List(ctx, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*ClientDTO]{}, fmt.Errorf("failed to list clients: %w", err)
	}

	dtos := make([]*ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, ToClientDTO(c))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// UpdateClient updates a client's details
func (s *CatalogService) UpdateClient(ctx context.Context, cmd UpdateClientCommand) (*ClientDTO, error) {
	client, err := s.clients.FindByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, errors.ErrNotFoundWithID("client", cmd.ClientID)
	}

	client.Name = cmd.Name
	client.ContactName = cmd.ContactName
	client.ContactEmail = cmd.ContactEmail
	client.ContactPhone = cmd.ContactPhone
	client.BillingAddress = cmd.BillingAddress
	client.ABN = cmd.ABN

	if err := s.clients.Save(ctx, client); err != nil {
		s.logger.WithError(err).Error("Failed to update client", "clientId", cmd.ClientID)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return ToClientDTO(client), nil
}

// DeleteClient removes a client. A client that still owns products cannot be
// deleted.
func (s *CatalogService) DeleteClient(ctx context.Context, id string) error {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return errors.ErrNotFoundWithID("client", id)
	}

	count, err := s.products.CountByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return errors.ErrInvalidState(domain.ErrClientHasProducts.Error())
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete client", "clientId", id)
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.logger.Info("Deleted client", "clientId", id, "name", client.Name)
	return nil
}

// CreateProduct creates a product owned by a client
func (s *CatalogService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	client, err := s.clients.FindByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, errors.ErrNotFoundWithID("client", cmd.ClientID)
	}

	existing, err := s.products.FindByCode(ctx, cmd.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("product code %s already exists", cmd.Code))
	}

	product := domain.NewProduct(cmd.Code, cmd.Description, cmd.ClientID, cmd.Unit, cmd.UnitPrice, cmd.CoreSize, cmd.Width, cmd.Diameter)

	if err := s.products.Save(ctx, product); err != nil {
		s.logger.WithError(err).Error("Failed to save product", "code", cmd.Code)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("Created product", "productId", product.ID.Hex(), "code", product.Code)
	return ToProductDTO(product), nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", id)
	}
	return ToProductDTO(product), nil
}

// ListProducts lists products, optionally for one client
func (s *CatalogService) ListProducts(ctx context.Context, clientID string, page api.PageRequest) (api.PageResponse[*ProductDTO], error) {
	products, total, err := s.products.List(ctx, clientID, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*ProductDTO]{}, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ToProductDTO(p))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// UpdateProduct updates a product's details
func (s *CatalogService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.ErrNotFoundWithID("product", cmd.ProductID)
	}

	product.Description = cmd.Description
	product.CoreSize = cmd.CoreSize
	product.Width = cmd.Width
	product.Diameter = cmd.Diameter
	product.Unit = cmd.Unit
	product.UnitPrice = cmd.UnitPrice

	if err := s.products.Save(ctx, product); err != nil {
		s.logger.WithError(err).Error("Failed to update product", "productId", cmd.ProductID)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return ToProductDTO(product), nil
}

// DeleteProduct removes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return errors.ErrNotFoundWithID("product", id)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete product", "productId", id)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("Deleted product", "productId", id, "code", product.Code)
	return nil
}

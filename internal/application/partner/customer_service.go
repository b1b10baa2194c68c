package partner

import (
	"context"

	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer record operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if existing, err := s.customerRepo.FindByPhone(ctx, tenantID, req.Phone); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this phone number already exists")
	}

	customer, err := partner.NewCustomer(tenantID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Address != "" {
		if err := customer.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.String("name", customer.Name))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, int64, error) {
	page, err := s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]CustomerResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCustomerResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// Update modifies a customer record
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer record. Their past orders keep the
// customer name snapshot so history survives the deletion.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}
	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}

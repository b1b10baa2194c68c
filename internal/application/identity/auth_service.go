package identity

import (
	"context"

	"github.com/potterypos/backend/internal/domain/identity"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles staff authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// SignUp registers a new staff account. The first account in a tenant
// becomes admin regardless of the requested role; later accounts
// default to staff.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.TenantID, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	count, err := s.userRepo.CountForTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	role := identity.UserRole(req.Role)
	if !role.IsValid() {
		role = identity.UserRoleStaff
	}
	if count == 0 {
		role = identity.UserRoleAdmin
	}

	user, err := identity.NewUser(req.TenantID, req.Email, req.Name, req.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	response := ToUserResponse(user)
	return &response, nil
}

// SignIn authenticates a staff account and issues an access token.
// Bad email and bad password produce the same error so the response
// does not reveal which accounts exist.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	invalidCredentials := shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

	user, err := s.userRepo.FindByEmail(ctx, req.TenantID, req.Email)
	if err != nil {
		s.logger.Warn("sign-in for unknown email", zap.String("email", req.Email))
		return nil, invalidCredentials
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("sign-in with wrong password", zap.String("email", req.Email))
		return nil, invalidCredentials
	}

	token, err := s.jwtService.Generate(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	return &SignInResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// GetUser retrieves a user by ID, scoped to the tenant
func (s *AuthService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	response := ToUserResponse(user)
	return &response, nil
}

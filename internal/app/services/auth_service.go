package services

import (
	"context"

	"github.com/apavel/studygate/internal/app/models"
	pkgAuth "github.com/apavel/studygate/internal/pkg/auth"
)

// TokenPair carries an issued access token and its lifetime in seconds.
type TokenPair struct {
	AccessToken string
	ExpiresIn   int
}

// AuthService handles registration and login as token-issuing operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
}

type authServiceImpl struct {
	userService UserService
	jwtService  *pkgAuth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userService UserService, jwtService *pkgAuth.JWTService) AuthService {
	return &authServiceImpl{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register creates a student account and immediately issues a token for it.
func (s *authServiceImpl) Register(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userService.Register(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	return s.issue(user)
}

// Login verifies credentials and issues a token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userService.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	return s.issue(user)
}

func (s *authServiceImpl) issue(user *models.User) (*models.User, *TokenPair, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, nil, err
	}
	return user, &TokenPair{AccessToken: token, ExpiresIn: expiresIn}, nil
}

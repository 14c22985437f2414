package services

import (
	"context"
	"errors"
	"time"

	"cleanconnect/config"
	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	LegacyClientToken = "secret-token"
	ClientToken       = "client-secret-token"
	CleanerToken      = "cleaner-secret-token"
	AdminToken        = "admin-secret-token"
)

var staticTokenRoles = map[string]models.Role{
	LegacyClientToken: models.RoleClient,
	ClientToken:       models.RoleClient,
	CleanerToken:      models.RoleCleaner,
	AdminToken:        models.RoleAdmin,
}

// Used when no stored user holds the token's role.
var fallbackUserIDs = map[models.Role]string{
	models.RoleClient:  "client-1",
	models.RoleCleaner: "cleaner-1",
	models.RoleAdmin:   "admin-1",
}

type TokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	config       config.Config
	userRepo     repositories.UserRepository
	log          logger.Logger
	now          func() time.Time
	passwordCost int
}

func NewAuthService(config config.Config, userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		config:       config,
		userRepo:     userRepo,
		log:          logger.New("authService"),
		now:          time.Now,
		passwordCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", s.log.Function("HashPassword").Err("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *AuthService) CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken returns the bearer token a user authenticates with from now on.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	if s.config.AuthMode != config.AuthModeJWT {
		return StaticTokenFor(user.Role), nil
	}

	log := s.log.Function("IssueToken")

	now := s.now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.JWTExpiryHours) * time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}
	return signed, nil
}

// Authenticate resolves a bearer token to the stored user it represents.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	log := s.log.TraceFromContext(ctx).Function("Authenticate")

	if token == "" {
		return models.User{}, log.ErrorWithType(types.ErrUnauthorized, "Token required")
	}

	if s.config.AuthMode == config.AuthModeJWT {
		return s.authenticateJWT(ctx, token, log)
	}
	return s.authenticateStatic(ctx, token, log)
}

func (s *AuthService) authenticateStatic(
	ctx context.Context,
	token string,
	log logger.Logger,
) (models.User, error) {
	role, ok := staticTokenRoles[token]
	if !ok {
		return models.User{}, log.ErrorWithType(types.ErrUnauthorized, "Invalid token")
	}

	user, found, err := s.userRepo.FirstByRole(ctx, role)
	if err != nil {
		return models.User{}, log.Err("failed to resolve token user", err, "role", role)
	}
	if found {
		return user, nil
	}

	user, err = s.userRepo.Get(ctx, fallbackUserIDs[role])
	if errors.Is(err, types.ErrNotFound) {
		return models.User{}, log.ErrorWithType(types.ErrUnauthorized, "User not found", "role", role)
	}
	if err != nil {
		return models.User{}, log.Err("failed to load fallback user", err, "role", role)
	}
	return user, nil
}

func (s *AuthService) authenticateJWT(
	ctx context.Context,
	token string,
	log logger.Logger,
) (models.User, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(s.config.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Info("token validation failed", "error", err.Error())
		return models.User{}, log.ErrorWithType(types.ErrUnauthorized, "Invalid token")
	}

	user, err := s.userRepo.Get(ctx, claims.Subject)
	if errors.Is(err, types.ErrNotFound) {
		return models.User{}, log.ErrorWithType(types.ErrUnauthorized, "User not found", "userID", claims.Subject)
	}
	if err != nil {
		return models.User{}, log.Err("failed to load token user", err, "userID", claims.Subject)
	}
	return user, nil
}

func StaticTokenFor(role models.Role) string {
	switch role {
	case models.RoleCleaner:
		return CleanerToken
	case models.RoleAdmin:
		return AdminToken
	default:
		return ClientToken
	}
}

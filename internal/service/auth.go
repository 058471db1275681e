package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	githubOAuth "golang.org/x/oauth2/github"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/github"
)

// UserStore defines the user data access interface consumed by AuthService.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Upsert(ctx context.Context, user domain.User) (*domain.User, error)
}

// GitHubIdentity resolves an OAuth access token to the GitHub account it
// belongs to.
type GitHubIdentity interface {
	AuthenticatedUser(ctx context.Context, token string) (*github.Account, error)
}

// AuthConfig holds OAuth and token signing configuration.
type AuthConfig struct {
	GitHubClientID     string
	GitHubClientSecret string
	JWTSecret          string
	FrontendURL        string
}

// AuthService handles authentication logic.
type AuthService struct {
	users     UserStore
	identity  GitHubIdentity
	jwtSecret []byte
	github    *oauth2.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, identity GitHubIdentity, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:     users,
		identity:  identity,
		jwtSecret: []byte(cfg.JWTSecret),
		github: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			Endpoint:     githubOAuth.Endpoint,
			Scopes:       []string{"user:email", "read:user", "repo"},
			RedirectURL:  cfg.FrontendURL + "/auth/github/callback",
		},
	}
}

// GitHubAuthURL returns the GitHub OAuth authorization URL.
func (s *AuthService) GitHubAuthURL(state string) string {
	return s.github.AuthCodeURL(state)
}

// TokenPair holds an access token and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GitHubCallback exchanges the authorization code, upserts the user keyed by
// their GitHub id, stores the GitHub token for repository sync, and returns
// a JWT pair.
func (s *AuthService) GitHubCallback(ctx context.Context, code string) (*domain.User, *TokenPair, error) {
	token, err := s.github.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("github token exchange: %w", err)
	}

	account, err := s.identity.AuthenticatedUser(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch github account: %w", err)
	}

	user, err := s.users.Upsert(ctx, domain.User{
		GitHubID:    strconv.FormatInt(account.ID, 10),
		Email:       account.Email,
		Name:        account.Name,
		Username:    strPtr(account.Login),
		AvatarURL:   strPtr(account.AvatarURL),
		GitHubToken: strPtr(token.AccessToken),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("upsert github user: %w", err)
	}

	pair, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// ValidateToken validates a JWT access token and returns the user ID.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return subjectID(claims)
}

// RefreshAccessToken validates a refresh token and returns a new token pair.
func (s *AuthService) RefreshAccessToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.parseClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return nil, domain.ErrUnauthorized
	}

	userID, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(userID)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func subjectID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

func (s *AuthService) generateTokenPair(userID uuid.UUID) (*TokenPair, error) {
	now := time.Now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	})
	accessStr, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": "refresh",
		"iat":  now.Unix(),
		"exp":  now.Add(7 * 24 * time.Hour).Unix(),
	})
	refreshStr, err := refreshToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
	}, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

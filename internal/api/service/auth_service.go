package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"reviewhub/internal/api/mail"
	"reviewhub/internal/api/middleware/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims is the verified identity carried by an access token.
type Claims struct {
	UserID    string
	Email     string
	Username  string
	Role      string
	Superuser bool
}

type AuthService interface {
	Signup(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
	RequestLoginCode(ctx context.Context, email string) error
	ConfirmLoginCode(ctx context.Context, email, code string) (accessToken, refreshToken string, err error)
	AccessTokenTTL() time.Duration
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	loginCodeRepo    repository.LoginCodeRepository
	mailer           mail.Mailer
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	loginCodeTTL     time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	loginCodeRepo repository.LoginCodeRepository,
	mailer mail.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		loginCodeRepo:    loginCodeRepo,
		mailer:           mailer,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		loginCodeTTL:     cfg.LoginCodeTTL,
	}
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// Signup registers a new user with the default role.
func (s *authService) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailInUse
	}
	if username != "" {
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			return nil, ErrNameInUse
		}
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Role:     models.RoleUser,
		Password: hashedPassword,
	}
	if username != "" {
		user.Username = &username
	}

	if err := s.userRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, userUniqueError(err)
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates by email and returns an access/refresh token pair.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// dummy compare to keep the unknown-email path constant time
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

func (s *authService) issueTokenPair(user *models.User) (string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"email":     user.Email,
		"role":      user.Role,
		"superuser": user.Superuser,
		"exp":       time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
		"type":      "access",
	}
	if user.Username != nil {
		claims["username"] = *user.Username
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	if refreshToken.Revoked {
		return "", ErrInvalidToken
	}
	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(refreshToken.ID)
		return "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(refreshToken.UserID)
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

// RevokeRefreshToken invalidates a refresh token at logout. Unknown tokens
// are a silent no-op so the endpoint does not reveal which tokens exist.
func (s *authService) RevokeRefreshToken(ctx context.Context, refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return nil
	}
	return s.refreshTokenRepo.Revoke(refreshToken.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if claims.UserID, ok = mapClaims["user_id"].(string); !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	claims.Email, _ = mapClaims["email"].(string)
	claims.Username, _ = mapClaims["username"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	claims.Superuser, _ = mapClaims["superuser"].(bool)

	return claims, nil
}

// RequestLoginCode issues a one-time code for passwordless login. Unknown
// emails are a silent no-op so the endpoint does not reveal which addresses
// have accounts.
func (s *authService) RequestLoginCode(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := generateLoginCode()
	if err != nil {
		return err
	}

	if err := s.loginCodeRepo.Store(ctx, user.Email, code, s.loginCodeTTL); err != nil {
		return err
	}

	return s.mailer.SendLoginCode(ctx, user.Email, code)
}

// ConfirmLoginCode exchanges a valid one-time code for a token pair.
func (s *authService) ConfirmLoginCode(ctx context.Context, email, code string) (string, string, error) {
	if err := s.loginCodeRepo.Consume(ctx, email, code); err != nil {
		if errors.Is(err, repository.ErrCodeMismatch) {
			return "", "", ErrInvalidLoginCode
		}
		return "", "", err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", "", ErrInvalidLoginCode
	}

	return s.issueTokenPair(user)
}

func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

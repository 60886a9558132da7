package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"lv-broker/internal/model"
	"lv-broker/internal/users"
)

type Service struct {
	pool            *pgxpool.Pool
	users           *users.Store
	issuer          string
	secret          []byte
	ttl             time.Duration
	defaultPassword string
}

func NewService(pool *pgxpool.Pool, userStore *users.Store, issuer string, secret []byte, ttl time.Duration, defaultPassword string) *Service {
	return &Service{pool: pool, users: userStore, issuer: issuer, secret: secret, ttl: ttl, defaultPassword: defaultPassword}
}

// Register creates a user with a generated account number. An empty
// password falls back to the configured default.
func (s *Service) Register(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, errors.New("email required")
	}
	if password == "" {
		password = s.defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}
	accountNumber := uuid.NewString()
	return s.users.Create(ctx, s.pool, email, accountNumber, string(hash))
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	userID, hash, ok, err := s.users.CredentialsByEmail(ctx, s.pool, email)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	return s.signToken(userID)
}

func (s *Service) signToken(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseToken validates the token and returns the user id it was issued to.
func (s *Service) ParseToken(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid token")
	}
	if claims.Issuer != s.issuer {
		return 0, errors.New("invalid issuer")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid subject")
	}
	return id, nil
}

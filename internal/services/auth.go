package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error
	ParseToken(tokenString string) (uuid.UUID, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecretKey string
	AccessTTL    time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type authService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, cfg AuthConfig) AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	return &authService{
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "Auth.Register"
	in = normalizeRegisterInput(in)
	dbc := dbctx.Context{Ctx: ctx}
	if err := validateRegistration(dbc, op, as.userRepo, in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password, as.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	now := as.now().UTC()
	user := &types.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
		// A concurrent registration can still hit the unique index.
		return nil, aggregates.MapError(op, err)
	}
	as.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	const op = "Auth.Login"
	email = normalizeInput(email)
	if err := validateLogin(op, email, password); err != nil {
		return "", err
	}
	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", fmt.Errorf("load user by email: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		as.log.Warn("login rejected", "email", email)
		return "", domainagg.NewError(domainagg.CodeValidation, op, "invalid email or password", nil)
	}
	return as.generateAccessToken(user)
}

func (as *authService) SetPassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	const op = "Auth.SetPassword"
	if userID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeUnauthorized, op, "authentication required", nil)
	}
	if err := validatePassword(op, next); err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	user, err := as.userRepo.GetByID(dbc, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "user not found", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "current password is incorrect", nil)
	}
	hash, err := hashPassword(next, as.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return as.userRepo.UpdatePassword(dbc, userID, hash)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecretKey))
}

// ParseToken validates an HS256 access token and returns its subject.
func (as *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(as.cfg.JWTSecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject: %v", ErrInvalidToken, err)
	}
	return userID, nil
}

// SetContextFromToken attaches RequestData for a valid token. An empty token
// leaves ctx unchanged.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	userID, err := as.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: tokenString, UserID: userID}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.AccessTTL
}

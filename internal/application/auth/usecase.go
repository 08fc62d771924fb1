package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/password"
)

// Resultados de login que se reportan al LoginRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid_credentials"
	OutcomeError   = "error"
)

// LoginRecorder recibe el resultado de cada intento de login (métricas).
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(string) {}

// LoginResult token firmado más el usuario público. El handler pone el token en la cookie.
type LoginResult struct {
	Token string
	User  dto.UserResponse
}

// AuthUseCase casos de uso de autenticación: login, identidad actual y alta de usuarios semilla.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
	codec    *jwt.Codec
	validate *validation.Validator
	recorder LoginRecorder
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. recorder puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, hasher *password.Hasher, codec *jwt.Codec, validate *validation.Validator, recorder LoginRecorder) *AuthUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		validate: validate,
		recorder: recorder,
		now:      time.Now,
	}
}

// Login verifica email/password y emite el token de sesión.
// Email inexistente y password incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.recorder.RecordLogin(OutcomeError)
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		uc.hasher.VerifyMissing(in.Password)
		uc.recorder.RecordLogin(OutcomeInvalid)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		uc.recorder.RecordLogin(OutcomeInvalid)
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.codec.Issue(identityOf(user))
	if err != nil {
		uc.recorder.RecordLogin(OutcomeError)
		return nil, fmt.Errorf("login: emitir token: %w", err)
	}
	uc.recorder.RecordLogin(OutcomeSuccess)
	return &LoginResult{Token: token, User: toUserResponse(identityOf(user))}, nil
}

// Me devuelve la identidad contenida en un token ya verificado por el gate.
func (uc *AuthUseCase) Me(id jwt.Identity) (*dto.UserResponse, error) {
	if id.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	u := toUserResponse(id)
	return &u, nil
}

// EnsureUser crea el usuario si el email no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, email, plain, name, role string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || plain == "" {
		return false, domain.NewValidationError("email", "email y password son obligatorios")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("ensure user: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	hash, err := uc.hasher.Hash(plain)
	if err != nil {
		return false, fmt.Errorf("ensure user: %w", err)
	}
	if role == "" {
		role = entity.RoleUser
	}
	if name == "" {
		name = email
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("ensure user: %w", err)
	}
	return true, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func identityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func toUserResponse(id jwt.Identity) dto.UserResponse {
	return dto.UserResponse{ID: id.ID, Email: id.Email, Name: id.Name, Role: id.Role}
}

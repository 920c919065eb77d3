// Package auth gestiona usuarios del taller y el login por PIN desde tablet.
package auth

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Técnico sembrado cuando la tabla de usuarios está vacía.
const (
	DefaultTechnicianName = "Head Tech"
	DefaultTechnicianPIN  = "1234"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Option ajusta el caso de uso.
type Option func(*AuthUseCase)

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.bcryptCost = cost }
}

// AuthUseCase casos de uso de usuarios y autenticación por PIN.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
	log        *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger, opts ...Option) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, bcryptCost: bcrypt.DefaultCost, log: log}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateUser crea un usuario hasheando el PIN con bcrypt.
// Como el login es solo por PIN, dos usuarios no pueden compartirlo (ErrDuplicate).
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, domain.InvalidInputf("el nombre es obligatorio")
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleTechnician {
		return nil, domain.InvalidInputf("rol %q inválido", in.Role)
	}
	if !validPIN(in.PIN) {
		return nil, domain.InvalidInputf("el PIN debe tener entre 4 y 8 dígitos")
	}
	if err := checkRate(in.HourlyRate); err != nil {
		return nil, err
	}

	taken, err := uc.findByPIN(ctx, in.PIN)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		FullName:   name,
		Role:       in.Role,
		PinHash:    string(hash),
		HourlyRate: in.HourlyRate,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Storage("crear usuario", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	out := toUserResponse(user)
	return &out, nil
}

// TechLogin verifica el PIN, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) TechLogin(ctx context.Context, in dto.TechLoginRequest) (*dto.LoginResponse, error) {
	if !validPIN(in.PIN) {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.findByPIN(ctx, in.PIN)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Msg("login con PIN inválido")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// ListUsers lista todos los usuarios.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, domain.Storage("listar usuarios", err)
	}
	return toUserResponses(list), nil
}

// ListTechnicians lista los usuarios asignables a trabajos.
func (uc *AuthUseCase) ListTechnicians(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByRole(ctx, entity.RoleTechnician)
	if err != nil {
		return nil, domain.Storage("listar técnicos", err)
	}
	return toUserResponses(list), nil
}

// UpdateRate cambia la tarifa por hora. Las entradas de mano de obra ya registradas conservan
// la tarifa con la que se cargaron.
func (uc *AuthUseCase) UpdateRate(ctx context.Context, userID int64, rate decimal.Decimal) error {
	if err := checkRate(rate); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateHourlyRate(ctx, userID, rate); err != nil {
		return domain.Storage("actualizar tarifa", err)
	}
	return nil
}

// EnsureDefaultTechnician siembra el técnico por defecto si no hay usuarios.
// Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultTechnician(ctx context.Context) (bool, error) {
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return false, domain.Storage("contar usuarios", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{
		FullName:   DefaultTechnicianName,
		Role:       entity.RoleTechnician,
		PIN:        DefaultTechnicianPIN,
		HourlyRate: decimal.Zero,
	})
	if err != nil {
		return false, err
	}
	uc.log.Warn().Msg("técnico por defecto creado con PIN 1234; cámbielo")
	return true, nil
}

// findByPIN compara el PIN contra cada hash: bcrypt no permite buscar por valor.
func (uc *AuthUseCase) findByPIN(ctx context.Context, pin string) (*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, domain.Storage("listar usuarios", err)
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(pin)) == nil {
			return u, nil
		}
	}
	return nil, nil
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func checkRate(rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(job.MaxHourlyRate) {
		return domain.InvalidInputf("tarifa por hora inválida")
	}
	return nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Role:       u.Role,
		HourlyRate: u.HourlyRate,
	}
}

func toUserResponses(list []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out
}

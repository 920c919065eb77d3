package auth_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlite/sqlitetest"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	s := sqlitetest.NewStore(t)
	return auth.NewAuthUseCase(s.Users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "taller-test"},
		logger.Nop(), auth.WithBcryptCost(bcrypt.MinCost))
}

func TestEnsureDefaultTechnician_SoloConTablaVacia(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	created, err := uc.EnsureDefaultTechnician(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureDefaultTechnician(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	techs, err := uc.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, auth.DefaultTechnicianName, techs[0].FullName)

	res, err := uc.TechLogin(ctx, dto.TechLoginRequest{PIN: auth.DefaultTechnicianPIN})
	require.NoError(t, err)
	assert.Equal(t, techs[0].ID, res.User.ID)
}

func TestTechLogin_TokenConRol(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{FullName: "Ruwan", Role: entity.RoleTechnician, PIN: "5678", HourlyRate: decimal.NewFromInt(35)})
	require.NoError(t, err)

	res, err := uc.TechLogin(ctx, dto.TechLoginRequest{PIN: "5678"})
	require.NoError(t, err)
	userID, role, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleTechnician, role)

	_, err = uc.TechLogin(ctx, dto.TechLoginRequest{PIN: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.TechLogin(ctx, dto.TechLoginRequest{PIN: "abc"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateUser_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{FullName: "A", Role: entity.RoleAdmin, PIN: "1111"})
	require.NoError(t, err)

	cases := []dto.CreateUserRequest{
		{FullName: " ", Role: entity.RoleAdmin, PIN: "2222"},
		{FullName: "B", Role: "owner", PIN: "2222"},
		{FullName: "B", Role: entity.RoleAdmin, PIN: "12"},
		{FullName: "B", Role: entity.RoleAdmin, PIN: "12ab"},
		{FullName: "B", Role: entity.RoleTechnician, PIN: "2222", HourlyRate: decimal.NewFromInt(-1)},
		{FullName: "B", Role: entity.RoleTechnician, PIN: "2222", HourlyRate: decimal.NewFromInt(10001)},
	}
	for _, c := range cases {
		_, err := uc.CreateUser(ctx, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", c)
	}

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{FullName: "C", Role: entity.RoleTechnician, PIN: "1111"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateRate(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{FullName: "Ruwan", Role: entity.RoleTechnician, PIN: "5678"})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateRate(ctx, u.ID, decimal.RequireFromString("42.50")))
	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HourlyRate.Equal(decimal.RequireFromString("42.50")))

	assert.ErrorIs(t, uc.UpdateRate(ctx, u.ID, decimal.NewFromInt(-5)), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateRate(ctx, 999, decimal.NewFromInt(5)), domain.ErrNotFound)
}

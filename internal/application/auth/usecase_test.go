package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/auth"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/lacteos-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memstore.Store) {
	store := memstore.New()
	return auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}), store
}

func TestRegisterUser_RolPorDefectoStaff(t *testing.T) {
	uc, _ := newAuth()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " Ana@Farm.CO ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "staff", u.Role)
	assert.Equal(t, "ana@farm.co", u.Email)
	assert.Equal(t, "ana@farm.co", u.Name)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@farm.co", Password: "otrapass123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@farm.co", Password: "password123", Role: "admin"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@farm.co", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, out.User.LastLoginAt)

	id, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)
	assert.Equal(t, "admin", id.Role)

	me, err := uc.Me(ctx, id.UserID)
	require.NoError(t, err)
	assert.Equal(t, "admin@farm.co", me.Email)
}

func TestRegisterUser_RolPrivilegiadoSoloPrimerUsuario(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "duena@farm.co", Password: "password123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	for _, role := range []string{"admin", "manager"} {
		_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: role + "@farm.co", Password: "password123", Role: role})
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}
	u, err := store.Users.GetByEmail(ctx, "admin@farm.co")
	require.NoError(t, err)
	assert.Nil(t, u, "el registro rechazado no crea usuario")

	driver, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ruta@farm.co", Password: "password123", Role: "driver"})
	require.NoError(t, err)
	assert.Equal(t, "driver", driver.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@farm.co", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@farm.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@farm.co", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@farm.co", Password: "password123"})
	require.NoError(t, err)

	user, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	user.Status = "inactive"
	require.NoError(t, store.Users.Update(ctx, user))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "b@farm.co", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/municare-api/internal/application/auth"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type mockUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User

	emailErr error // fuerza un fallo de lectura en GetByEmail
	created  []*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	m.created = append(m.created, &cp)
	m.byEmail[u.Email] = &cp
	m.byID[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.emailErr != nil {
		return nil, m.emailErr
	}
	return m.byEmail[email], nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.byEmail[u.Email] = &cp
	m.byID[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) List(context.Context, int) ([]*entity.User, error) { return nil, nil }

func buildAuthUC(repo *mockUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "municare-test",
	})
}

func seedUser(t *testing.T, repo *mockUserRepo, email, password, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "usr-1",
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Ana Admin",
		Role:         entity.RoleAdmin,
		Status:       status,
	}
	repo.byEmail[email] = u
	repo.byID[u.ID] = u
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "ana@municipio.test", "clave-segura", entity.UserActive)
	uc := buildAuthUC(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@municipio.test",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

// Email desconocido y contraseña incorrecta devuelven el mismo error: no se
// revela si la cuenta existe.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "ana@municipio.test", "clave-segura", entity.UserActive)
	uc := buildAuthUC(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@municipio.test",
		Password: "clave-mala",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@municipio.test",
		Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDeshabilitada(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "ana@municipio.test", "clave-segura", entity.UserDisabled)
	uc := buildAuthUC(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@municipio.test",
		Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_EmailDuplicado(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "ana@municipio.test", "clave-segura", entity.UserActive)
	uc := buildAuthUC(repo)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "ana@municipio.test",
		Password: "otra-clave-123",
		Name:     "Ana Bis",
		Role:     entity.RoleAgent,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.created)
}

// Un fallo de lectura en el chequeo de unicidad aborta el alta: no puede
// colarse un duplicado porque la consulta falló.
func TestCreateUser_FalloDeLecturaAbortaElAlta(t *testing.T) {
	repo := newMockUserRepo()
	repo.emailErr = errors.New("tabla no disponible")
	uc := buildAuthUC(repo)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "nueva@municipio.test",
		Password: "clave-segura-123",
		Name:     "Operadora Nueva",
		Role:     entity.RoleAgent,
	})
	require.Error(t, err)
	assert.Empty(t, repo.created, "con la lectura caída no debe crearse el usuario")
}

func TestCreateUser_HasheaPassword(t *testing.T) {
	repo := newMockUserRepo()
	uc := buildAuthUC(repo)

	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "nueva@municipio.test",
		Password: "clave-segura-123",
		Name:     "Operadora Nueva",
		Role:     entity.RoleAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UserActive, out.Status)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura-123")))
}

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica-erp/fabrica-api/internal/application/auth"
	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	pkgjwt "github.com/fabrica-erp/fabrica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos
// ──────────────────────────────────────────────────────────────────────────────

type memEmployees struct {
	byID map[string]*entity.Employee
}

func (r *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	r.byID[e.ID] = e
	return nil
}

func (r *memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return r.byID[id], nil
}

func (r *memEmployees) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	for _, e := range r.byID {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memEmployees) GetByIDs(_ context.Context, ids []string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEmployees) List(_ context.Context) ([]*entity.Employee, error) { return nil, nil }

func (r *memEmployees) ListByDepartment(_ context.Context, _ string) ([]*entity.Employee, error) {
	return nil, nil
}

func (r *memEmployees) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type memDepartments struct {
	byID map[string]*entity.Department
}

func (r *memDepartments) Create(_ context.Context, d *entity.Department) error {
	r.byID[d.ID] = d
	return nil
}

func (r *memDepartments) GetByID(_ context.Context, id string) (*entity.Department, error) {
	return r.byID[id], nil
}

func (r *memDepartments) List(_ context.Context) ([]*entity.Department, error) { return nil, nil }

const testSecret = "auth-test-secret"

func newAuthUC() *auth.AuthUseCase {
	departments := &memDepartments{byID: map[string]*entity.Department{
		"dept-1": {ID: "dept-1", Name: "Soldadura"},
	}}
	employees := &memEmployees{byID: map[string]*entity.Employee{}}
	return auth.NewAuthUseCase(employees, departments, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "fabrica-erp-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmpleadoConDepartamento(t *testing.T) {
	uc := newAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:       "Sergio Soldador",
		Email:      "sergio@fabrica.test",
		Password:   "super-secreto",
		Role:       "employee",
		Department: "dept-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "employee", out.Role)
	require.NotNil(t, out.Department)
	assert.Equal(t, "dept-1", out.Department.ID)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "X", Email: "x@fabrica.test", Password: "super-secreto", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegister_ManagerSinDepartamento(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Marta", Email: "marta@fabrica.test", Password: "super-secreto", Role: "manager",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"manager y employee exigen departamento")
}

func TestRegister_AdminSinDepartamentoOK(t *testing.T) {
	uc := newAuthUC()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana Admin", Email: "ana@fabrica.test", Password: "super-secreto", Role: "admin",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Department)
}

func TestRegister_DepartamentoInexistente(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "X", Email: "x@fabrica.test", Password: "super-secreto",
		Role: "employee", Department: "dept-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()
	in := dto.RegisterRequest{
		Name: "Sergio", Email: "sergio@fabrica.test", Password: "super-secreto",
		Role: "employee", Department: "dept-1",
	}
	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenLlevaRolYDepartamento(t *testing.T) {
	uc := newAuthUC()
	reg, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Marta Jefa", Email: "marta@fabrica.test", Password: "super-secreto",
		Role: "manager", Department: "dept-1",
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "marta@fabrica.test", Password: "super-secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, role, departmentID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "manager", role)
	assert.Equal(t, "dept-1", departmentID)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Sergio", Email: "sergio@fabrica.test", Password: "super-secreto",
		Role: "employee", Department: "dept-1",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "sergio@fabrica.test", Password: "otro-password",
	})
	assert.ErrorIs(t, err, domain.ErrNoCredential)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@fabrica.test", Password: "super-secreto",
	})
	assert.ErrorIs(t, err, domain.ErrNoCredential,
		"email inexistente y password malo deben ser indistinguibles")
}

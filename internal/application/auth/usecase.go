package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
	"github.com/fabrica-erp/fabrica-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	employeeRepo   repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, departmentRepo repository.DepartmentRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employeeRepo: employeeRepo, departmentRepo: departmentRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta: valida rol y departamento, hashea el password
// con bcrypt y persiste. Los roles manager y employee exigen un departamento
// existente; un id de departamento que no resuelve es ErrDepartmentNotFound.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.EmployeeResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if role.RequiresDepartment() && in.Department == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.employeeRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var deptID *string
	var dept *entity.Department
	if in.Department != "" {
		dept, err = uc.departmentRepo.GetByID(ctx, in.Department)
		if err != nil {
			return nil, err
		}
		if dept == nil {
			return nil, domain.ErrDepartmentNotFound
		}
		deptID = &dept.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		DepartmentID: deptID,
		Department:   dept,
		CreatedAt:    time.Now(),
	}
	if err := uc.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return dto.NewEmployeeResponse(employee), nil
}

// Login verifica email/password, genera el JWT (id + rol + departamento en
// los claims) y retorna token + empleado resuelto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	employee, err := uc.employeeRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNoCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoCredential
	}
	deptID := ""
	if employee.DepartmentID != nil {
		deptID = *employee.DepartmentID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, employee.ID, string(employee.Role), deptID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.NewEmployeeResponse(employee),
	}, nil
}

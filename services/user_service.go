package services

import (
	"errors"

	"crediario/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService fornece métodos para operadores do sistema
type UserService struct {
	db *gorm.DB
}

// UserDTO representa a visão pública de um operador
type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserRequest representa os dados de cadastro de um operador
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// NewUserService cria uma nova instância de UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUserInternal cadastra um novo operador
func (h *UserService) CreateUserInternal(req CreateUserRequest) (*models.User, error) {
	// Verifica se já existe operador com o mesmo email
	var existingUser models.User
	if err := h.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&existingUser).Error; err == nil {
		return nil, NewValidationError("já existe um operador com este email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// FindByEmail busca um operador por email (ignorando caixa e espaços)
func (h *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := h.db.Where("LOWER(TRIM(email)) = LOWER(TRIM(?))", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("operador não encontrado")
		}
		return nil, err
	}
	return &user, nil
}

// CheckPassword compara a senha informada com o hash armazenado
func (h *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

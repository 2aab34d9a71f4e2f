package controllers

import (
	"net/http"
	"regexp"
	"time"

	"crediario/config"
	"crediario/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// AuthController trata cadastro e autenticação de operadores
type AuthController struct {
	users    *services.UserService
	validate *validator.Validate
	config   *config.Config
}

// SignInRequest representa os dados de login
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignUpRequest representa os dados de cadastro
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// Claims representa as claims do token JWT
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthResponse representa a resposta de autenticação
type AuthResponse struct {
	Token string           `json:"token"`
	User  services.UserDTO `json:"user"`
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	validate := validator.New()

	// Validação customizada de senha: dígito, maiúscula, minúscula e
	// caractere especial
	validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
		hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
		hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
		hasSpecial := regexp.MustCompile(`[!@#$%^&*]`).MatchString(password)
		return hasNumber && hasUpper && hasLower && hasSpecial
	})

	return &AuthController{
		users:    users,
		validate: validate,
		config:   cfg,
	}
}

// GetJWTKey retorna a chave de assinatura dos tokens
func (c *AuthController) GetJWTKey() string {
	return c.config.JWT.SecretKey
}

// SignUp trata o cadastro de um operador
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dados de cadastro inválidos: " + err.Error()})
		return
	}

	user, err := c.users.CreateUserInternal(services.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := c.generateToken(user.ID, user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	ctx.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User: services.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// SignIn trata o login de um operador
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dados de login inválidos"})
		return
	}

	user, err := c.users.FindByEmail(req.Email)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	if !c.users.CheckPassword(user, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, err := c.generateToken(user.ID, user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User: services.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// generateToken gera um token JWT assinado para o operador
func (c *AuthController) generateToken(userID uint, email string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.JWT.SecretKey))
}

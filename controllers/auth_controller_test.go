package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"crediario/config"
	"crediario/database"
	"crediario/middleware"
	"crediario/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "chave-de-teste"
	cfg.JWT.ExpiresIn = 1

	userService := services.NewUserService(db)
	controller := NewAuthController(userService, cfg)

	router := gin.New()
	router.POST("/api/auth/signUp", controller.SignUp)
	router.POST("/api/auth/signIn", controller.SignIn)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware([]byte(controller.GetJWTKey())))
	protected.GET("/whoami", func(c *gin.Context) {
		userID, email, err := middleware.GetUserFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})

	return router
}

func TestSignUpAndSignIn(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodPost, "/api/auth/signUp", gin.H{
		"name":     "Operadora",
		"email":    "op@loja.com",
		"password": "Senha@Forte1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var signUp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signUp))
	assert.NotEmpty(t, signUp.Token)
	assert.Equal(t, "op@loja.com", signUp.User.Email)

	w = performRequest(router, http.MethodPost, "/api/auth/signIn", gin.H{
		"email":    "op@loja.com",
		"password": "Senha@Forte1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var signIn AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signIn))
	assert.NotEmpty(t, signIn.Token)
}

func TestSignUp_WeakPassword(t *testing.T) {
	router := setupAuthRouter(t)

	// Sem maiúscula nem caractere especial
	w := performRequest(router, http.MethodPost, "/api/auth/signUp", gin.H{
		"name":     "Operadora",
		"email":    "op@loja.com",
		"password": "senhafraca1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignIn_WrongPassword(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodPost, "/api/auth/signUp", gin.H{
		"name":     "Operadora",
		"email":    "op@loja.com",
		"password": "Senha@Forte1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/api/auth/signIn", gin.H{
		"email":    "op@loja.com",
		"password": "Senha@Errada9",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/api/auth/signIn", gin.H{
		"email":    "ninguem@loja.com",
		"password": "Senha@Forte1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodGet, "/api/whoami", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer token-invalido")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteAcceptsValidToken(t *testing.T) {
	router := setupAuthRouter(t)

	w := performRequest(router, http.MethodPost, "/api/auth/signUp", gin.H{
		"name":     "Operadora",
		"email":    "op@loja.com",
		"password": "Senha@Forte1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var signUp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signUp))

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signUp.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "op@loja.com", body["email"])
}

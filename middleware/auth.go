package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware valida o token JWT e injeta o operador no contexto
func AuthMiddleware(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Cabeçalho Authorization é obrigatório"})
			c.Abort()
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Claims do token inválidas"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id inválido no token"})
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)

		c.Set("user_id", uint(userID))
		c.Set("email", email)

		c.Next()
	}
}

// GetUserFromContext recupera o operador autenticado do contexto
func GetUserFromContext(c *gin.Context) (uint, string, error) {
	userID, ok := c.Get("user_id")
	if !ok {
		return 0, "", fmt.Errorf("user_id não encontrado no contexto")
	}

	email, ok := c.Get("email")
	if !ok {
		return 0, "", fmt.Errorf("email não encontrado no contexto")
	}

	return userID.(uint), email.(string), nil
}

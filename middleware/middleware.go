package middleware

import (
	"net/http"
	"strconv"
	"time"

	"crediario/utils"

	"github.com/gin-gonic/gin"
)

var (
	// Limitador global: 100 requisições por minuto por IP
	globalLimiter = utils.NewRateLimiter(100, time.Minute)
)

// RateLimit middleware para limitação de frequência de requisições
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !globalLimiter.Allow(clientIP) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Muitas requisições",
				"reset": globalLimiter.GetResetTime(clientIP),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", "100")
		c.Header("X-RateLimit-Remaining", strconv.Itoa(globalLimiter.GetRemaining(clientIP)))
		c.Header("X-RateLimit-Reset", globalLimiter.GetResetTime(clientIP).String())

		c.Next()
	}
}

// Logger middleware para registro das requisições
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime)
		utils.LogInfo("Requisição: %s %s - Status: %d - Duração: %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			duration,
		)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				utils.LogError("Erro: %v", e)
			}
		}
	}
}

// Recovery middleware para tratamento de panics
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.LogError("Panic recuperado: %v", err)

				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Erro interno do servidor",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}

// CORSMiddleware middleware para CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

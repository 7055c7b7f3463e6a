package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware проверяет Bearer-токен, отбрасывает отозванные
// (чёрный список в Redis) и кладёт user_id в контекст запроса
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		// Проверяем черный список токенов (nil-клиент - проверка пропускается)
		if rdb := utils.GetRedis(); rdb != nil {
			_, err := rdb.Get(utils.RedisCtx(), "blacklist:"+token).Result()
			if err == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
			c.Abort()
			return
		}
		c.Set("user_id", int(userID))
		c.Next()
	}
}

// OptionalJWTMiddleware разбирает токен, если он есть, но не требует его.
// Анонимные запросы проходят дальше с нулевым user_id.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if rdb := utils.GetRedis(); rdb != nil {
			if _, err := rdb.Get(utils.RedisCtx(), "blacklist:"+token).Result(); err == nil {
				c.Next()
				return
			}
		}
		claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET"))
		if err != nil {
			c.Next()
			return
		}
		if userID, ok := claims["user_id"].(float64); ok {
			c.Set("user_id", int(userID))
		}
		c.Next()
	}
}

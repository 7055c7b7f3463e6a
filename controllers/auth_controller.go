package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BAlenkaA/foodgram-project-react/config"
	"github.com/BAlenkaA/foodgram-project-react/models"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/token/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Укажите email и пароль"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Неверный email или пароль"})
			return
		}
		utils.LogError(err, "Login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Неверный email или пароль"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, ac.cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "Login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

// POST /api/auth/token/logout
// Токен попадает в чёрный список до конца своего срока жизни
func (ac *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")

	if rdb := utils.GetRedis(); rdb != nil && token != "" {
		claims, err := utils.ParseJWT(token, ac.cfg.JWTSecret)
		if err == nil {
			if ttl := utils.TokenTTL(claims); ttl > 0 {
				rdb.Set(utils.RedisCtx(), "blacklist:"+token, 1, ttl)
			}
		}
	}

	c.Status(http.StatusNoContent)
}

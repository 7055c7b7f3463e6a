package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/BAlenkaA/foodgram-project-react/config"
	"github.com/BAlenkaA/foodgram-project-react/models"
	"github.com/BAlenkaA/foodgram-project-react/services"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type UserController struct {
	cfg *config.Config
}

func NewUserController(cfg *config.Config) *UserController {
	return &UserController{cfg: cfg}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// POST /api/users
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Заполните все обязательные поля"})
		return
	}
	if len(req.Username) > 150 || !usernameRe.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Используются недопустимые символы в username"})
		return
	}

	db := utils.GetDB()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.LogError(err, "Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Пользователь с таким email уже существует"})
		return
	}
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		utils.LogError(err, "Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Пользователь с таким username уже существует"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		utils.LogError(err, "Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Приветственное письмо по возможности, регистрацию не блокируем
	if uc.cfg.SMTPHost != "" {
		go func(to, username string) {
			body := fmt.Sprintf("Здравствуйте, %s! Добро пожаловать в Foodgram.", username)
			if err := utils.SendEmail(to, "Добро пожаловать в Foodgram", body,
				uc.cfg.SMTPHost, uc.cfg.SMTPPort, uc.cfg.SMTPUser, uc.cfg.SMTPPass); err != nil {
				utils.LogError(err, "Welcome email")
			}
		}(user.Email, user.Username)
	}

	c.JSON(http.StatusCreated, gin.H{
		"email":      user.Email,
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// GET /api/users
func (uc *UserController) List(c *gin.Context) {
	db := utils.GetDB()
	page, limit, offset := pageParams(c)

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	var users []models.User
	if err := db.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	viewerID := currentUserID(c)
	results := make([]gin.H, 0, len(users))
	for _, user := range users {
		results = append(results, userRepr(db, user, viewerID))
	}
	c.JSON(http.StatusOK, paginatedResponse(c, total, page, limit, results))
}

// GET /api/users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Пользователь не найден"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userRepr(db, user, currentUserID(c)))
}

// GET /api/users/me
func (uc *UserController) Me(c *gin.Context) {
	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не авторизован"})
		return
	}
	c.JSON(http.StatusOK, userRepr(db, user, user.ID))
}

type passwordChangeRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// POST /api/users/set_password
func (uc *UserController) SetPassword(c *gin.Context) {
	var req passwordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Укажите текущий и новый пароль"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не авторизован"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Неверный текущий пароль"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/users/subscriptions?recipes_limit=N
func (uc *UserController) Subscriptions(c *gin.Context) {
	recipesLimit, err := services.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	db := utils.GetDB()
	viewerID := currentUserID(c)
	page, limit, offset := pageParams(c)

	users, total, err := services.NewSubscriptionService(db).Followed(viewerID, offset, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, user := range users {
		repr, err := subscriptionRepr(db, user, viewerID, recipesLimit)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		results = append(results, repr)
	}
	c.JSON(http.StatusOK, paginatedResponse(c, total, page, limit, results))
}

// POST /api/users/:id/subscribe
func (uc *UserController) Subscribe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	recipesLimit, err := services.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	db := utils.GetDB()
	viewerID := currentUserID(c)
	if err := services.NewSubscriptionService(db).Follow(viewerID, uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	var target models.User
	if err := db.First(&target, id).Error; err != nil {
		handleServiceError(c, err)
		return
	}
	repr, err := subscriptionRepr(db, target, viewerID, recipesLimit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, repr)
}

// DELETE /api/users/:id/subscribe
func (uc *UserController) Unsubscribe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	db := utils.GetDB()
	if err := services.NewSubscriptionService(db).Unfollow(currentUserID(c), uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

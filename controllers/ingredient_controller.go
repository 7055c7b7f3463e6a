package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BAlenkaA/foodgram-project-react/models"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IngredientController struct{}

func NewIngredientController() *IngredientController {
	return &IngredientController{}
}

// GET /api/ingredients?name=prefix
// Поиск по началу названия без учёта регистра, сортировка по имени
func (ic *IngredientController) List(c *gin.Context) {
	q := utils.GetDB().Model(&models.Ingredient{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := q.Order("name").Find(&ingredients).Error; err != nil {
		handleServiceError(c, err)
		return
	}
	results := make([]gin.H, 0, len(ingredients))
	for _, ingredient := range ingredients {
		results = append(results, ingredientRepr(ingredient))
	}
	c.JSON(http.StatusOK, results)
}

// GET /api/ingredients/:id
func (ic *IngredientController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var ingredient models.Ingredient
	if err := utils.GetDB().First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Ингредиент не найден"})
			return
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientRepr(ingredient))
}

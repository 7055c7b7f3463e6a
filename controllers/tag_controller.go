package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BAlenkaA/foodgram-project-react/models"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagController struct{}

func NewTagController() *TagController {
	return &TagController{}
}

// GET /api/tags
func (tc *TagController) List(c *gin.Context) {
	var tags []models.Tag
	if err := utils.GetDB().Order("id").Find(&tags).Error; err != nil {
		handleServiceError(c, err)
		return
	}
	results := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		results = append(results, tagRepr(tag))
	}
	c.JSON(http.StatusOK, results)
}

// GET /api/tags/:id
func (tc *TagController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var tag models.Tag
	if err := utils.GetDB().First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Тег не найден"})
			return
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagRepr(tag))
}

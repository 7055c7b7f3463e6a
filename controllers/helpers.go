package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/BAlenkaA/foodgram-project-react/services"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

// currentUserID возвращает id пользователя из контекста (0 - аноним)
func currentUserID(c *gin.Context) uint {
	return uint(c.GetInt("user_id"))
}

// pageParams разбирает page и limit (размер страницы по умолчанию 6)
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

// paginatedResponse собирает страничный ответ со ссылками next/previous
func paginatedResponse(c *gin.Context, total int64, page, limit int, results interface{}) gin.H {
	var next, previous interface{}
	if int64(page*limit) < total {
		next = pageURL(c, page+1, limit)
	}
	if page > 1 {
		previous = pageURL(c, page-1, limit)
	}
	return gin.H{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

func pageURL(c *gin.Context, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", c.Request.URL.Path, page, limit)
}

// handleServiceError переводит типизированную ошибку сервисного слоя
// в HTTP-ответ; всё остальное - 500 с записью в лог
func handleServiceError(c *gin.Context, err error) {
	if se, ok := services.AsError(err); ok {
		c.JSON(statusForError(se), gin.H{"message": se.Message})
		return
	}
	utils.LogError(err, c.Request.Method+" "+c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// statusForError: валидация и конфликты - 400, нет прав - 403.
// Отсутствующий рецепт или пользователь - 404, но отсутствие связи
// (не в избранном, не подписан) остаётся 400.
func statusForError(se *services.Error) int {
	switch se.Kind {
	case services.KindPermission:
		return http.StatusForbidden
	case services.KindNotFound:
		if se.Code == services.CodeNotMember || se.Code == services.CodeNotFollowing {
			return http.StatusBadRequest
		}
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

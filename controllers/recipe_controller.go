package controllers

import (
	"net/http"
	"strconv"

	"github.com/BAlenkaA/foodgram-project-react/config"
	"github.com/BAlenkaA/foodgram-project-react/services"
	"github.com/BAlenkaA/foodgram-project-react/utils"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	cfg *config.Config
}

func NewRecipeController(cfg *config.Config) *RecipeController {
	return &RecipeController{cfg: cfg}
}

type recipeRequest struct {
	Name        *string                   `json:"name"`
	Text        *string                   `json:"text"`
	Image       *string                   `json:"image"`
	CookingTime *int                      `json:"cooking_time"`
	Tags        []uint                    `json:"tags"`
	Ingredients []services.IngredientPair `json:"ingredients"`
}

// GET /api/recipes
// Фильтры: author, tags (slug, можно несколько), is_favorited,
// is_in_shopping_cart; страницы по 6 с переопределением через limit
func (rc *RecipeController) List(c *gin.Context) {
	db := utils.GetDB()
	viewerID := currentUserID(c)

	var filter services.RecipeFilter
	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.Atoi(raw)
		if err != nil || authorID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "author должен быть целым числом"})
			return
		}
		id := uint(authorID)
		filter.AuthorID = &id
	}
	filter.TagSlugs = c.QueryArray("tags")
	if c.Query("is_favorited") == "1" && viewerID != 0 {
		filter.FavoritedBy = &viewerID
	}
	if c.Query("is_in_shopping_cart") == "1" && viewerID != 0 {
		filter.InCartOf = &viewerID
	}

	page, limit, offset := pageParams(c)
	recipes, total, err := services.NewRecipeService(db).List(filter, offset, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	results := make([]gin.H, 0, len(recipes))
	for _, recipe := range recipes {
		results = append(results, recipeRepr(db, recipe, viewerID))
	}
	c.JSON(http.StatusOK, paginatedResponse(c, total, page, limit, results))
}

// GET /api/recipes/:id
func (rc *RecipeController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	db := utils.GetDB()
	recipe, err := services.NewRecipeService(db).Get(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeRepr(db, *recipe, currentUserID(c)))
}

// POST /api/recipes
func (rc *RecipeController) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	if req.Name == nil || *req.Name == "" || req.Text == nil || req.Image == nil || *req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Заполните все обязательные поля"})
		return
	}

	image, err := utils.SaveBase64Image(*req.Image, rc.cfg.MediaDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Не удалось сохранить изображение"})
		return
	}

	db := utils.GetDB()
	recipe, err := services.NewRecipeService(db).Create(
		currentUserID(c),
		services.RecipeAttrs{Name: req.Name, Text: req.Text, Image: &image, CookingTime: req.CookingTime},
		req.Tags,
		req.Ingredients,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipeRepr(db, *recipe, currentUserID(c)))
}

// PATCH|PUT /api/recipes/:id
// Состав (теги, ингредиенты) заменяется целиком, скалярные поля,
// не пришедшие в запросе, остаются прежними
func (rc *RecipeController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	var image *string
	if req.Image != nil {
		saved, err := utils.SaveBase64Image(*req.Image, rc.cfg.MediaDir)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Не удалось сохранить изображение"})
			return
		}
		image = &saved
	}

	db := utils.GetDB()
	recipe, err := services.NewRecipeService(db).Replace(
		uint(id),
		currentUserID(c),
		services.RecipeAttrs{Name: req.Name, Text: req.Text, Image: image, CookingTime: req.CookingTime},
		req.Tags,
		req.Ingredients,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeRepr(db, *recipe, currentUserID(c)))
}

// DELETE /api/recipes/:id
func (rc *RecipeController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	if err := services.NewRecipeService(utils.GetDB()).Delete(uint(id), currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/recipes/:id/favorite
func (rc *RecipeController) AddFavorite(c *gin.Context) {
	rc.addMembership(c, services.RelationFavorite)
}

// DELETE /api/recipes/:id/favorite
func (rc *RecipeController) RemoveFavorite(c *gin.Context) {
	rc.removeMembership(c, services.RelationFavorite)
}

// POST /api/recipes/:id/shopping_cart
func (rc *RecipeController) AddToCart(c *gin.Context) {
	rc.addMembership(c, services.RelationCart)
}

// DELETE /api/recipes/:id/shopping_cart
func (rc *RecipeController) RemoveFromCart(c *gin.Context) {
	rc.removeMembership(c, services.RelationCart)
}

func (rc *RecipeController) addMembership(c *gin.Context, relation services.Relation) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	preview, err := services.NewMembershipService(utils.GetDB()).Add(currentUserID(c), uint(id), relation)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, preview)
}

func (rc *RecipeController) removeMembership(c *gin.Context, relation services.Relation) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	if err := services.NewMembershipService(utils.GetDB()).Remove(currentUserID(c), uint(id), relation); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/recipes/download_shopping_cart
func (rc *RecipeController) DownloadShoppingCart(c *gin.Context) {
	userID := currentUserID(c)

	rdb := utils.GetRedis()
	if ok, msg := utils.CanDownloadShoppingList(rdb, userID); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": msg})
		return
	}

	shoppingList := services.NewShoppingListService(utils.GetDB())
	items, err := shoppingList.Aggregate(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.MarkShoppingListDownloaded(rdb, userID)

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(shoppingList.RenderToString(items)))
}

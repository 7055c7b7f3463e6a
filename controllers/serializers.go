package controllers

import (
	"github.com/BAlenkaA/foodgram-project-react/models"
	"github.com/BAlenkaA/foodgram-project-react/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Сборка JSON-представлений. Формы повторяют сериализаторы фронтового
// контракта: автор с is_subscribed, теги и ингредиенты развёрнуты.

func userRepr(db *gorm.DB, user models.User, viewerID uint) gin.H {
	isSubscribed := false
	if viewerID != 0 && viewerID != user.ID {
		isSubscribed, _ = services.NewSubscriptionService(db).IsFollowing(viewerID, user.ID)
	}
	return gin.H{
		"email":         user.Email,
		"id":            user.ID,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_subscribed": isSubscribed,
	}
}

func tagRepr(tag models.Tag) gin.H {
	return gin.H{
		"id":    tag.ID,
		"name":  tag.Name,
		"color": tag.Color,
		"slug":  tag.Slug,
	}
}

func ingredientRepr(ingredient models.Ingredient) gin.H {
	return gin.H{
		"id":               ingredient.ID,
		"name":             ingredient.Name,
		"measurement_unit": ingredient.MeasurementUnit,
	}
}

func recipePreviewRepr(recipe models.Recipe) gin.H {
	return gin.H{
		"id":           recipe.ID,
		"name":         recipe.Name,
		"image":        recipe.Image,
		"cooking_time": recipe.CookingTime,
	}
}

// recipeRepr требует рецепт с предзагруженными Author, Tags.Tag
// и Ingredients.Ingredient
func recipeRepr(db *gorm.DB, recipe models.Recipe, viewerID uint) gin.H {
	tags := make([]gin.H, 0, len(recipe.Tags))
	for _, rt := range recipe.Tags {
		tags = append(tags, tagRepr(rt.Tag))
	}

	ingredients := make([]gin.H, 0, len(recipe.Ingredients))
	for _, ia := range recipe.Ingredients {
		ingredients = append(ingredients, gin.H{
			"id":               ia.Ingredient.ID,
			"name":             ia.Ingredient.Name,
			"measurement_unit": ia.Ingredient.MeasurementUnit,
			"amount":           ia.Amount,
		})
	}

	isFavorited := false
	isInCart := false
	if viewerID != 0 {
		memberships := services.NewMembershipService(db)
		isFavorited, _ = memberships.IsMember(viewerID, recipe.ID, services.RelationFavorite)
		isInCart, _ = memberships.IsMember(viewerID, recipe.ID, services.RelationCart)
	}

	return gin.H{
		"id":                  recipe.ID,
		"tags":                tags,
		"author":              userRepr(db, recipe.Author, viewerID),
		"ingredients":         ingredients,
		"is_favorited":        isFavorited,
		"is_in_shopping_cart": isInCart,
		"name":                recipe.Name,
		"image":               recipe.Image,
		"text":                recipe.Text,
		"cooking_time":        recipe.CookingTime,
	}
}

// subscriptionRepr - пользователь с его рецептами (не больше recipesLimit)
// и общим числом рецептов
func subscriptionRepr(db *gorm.DB, user models.User, viewerID uint, recipesLimit *int) (gin.H, error) {
	subscriptions := services.NewSubscriptionService(db)

	recipes, err := subscriptions.RecipesOf(user.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	previews := make([]gin.H, 0, len(recipes))
	for _, recipe := range recipes {
		previews = append(previews, recipePreviewRepr(recipe))
	}

	count, err := subscriptions.RecipeCount(user.ID)
	if err != nil {
		return nil, err
	}

	repr := userRepr(db, user, viewerID)
	repr["recipes"] = previews
	repr["recipes_count"] = count
	return repr, nil
}

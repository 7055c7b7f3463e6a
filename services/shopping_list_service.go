package services

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// ShoppingListItem - просуммированная группа (ингредиент, единица измерения)
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

// ShoppingListService собирает список покупок из рецептов корзины
type ShoppingListService struct {
	DB *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{DB: db}
}

// Aggregate суммирует количества по парам (название, единица измерения)
// для всех рецептов в корзине пользователя. Группировка и суммирование
// делаются базой, порядок - алфавитный по названию, поэтому результат
// не зависит от порядка добавления рецептов. Пустая корзина - пустой список.
func (s *ShoppingListService) Aggregate(userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.DB.
		Table("cart_items").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS total_amount").
		Joins("JOIN recipes ON recipes.id = cart_items.recipe_id AND recipes.deleted_at IS NULL").
		Joins("JOIN ingredient_amounts ON ingredient_amounts.recipe_id = cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render пишет по строке на группу: "Мука (г) - 500"
func (s *ShoppingListService) Render(w io.Writer, items []ShoppingListItem) error {
	for _, item := range items {
		line := fmt.Sprintf("%s (%s) - %d\n", capitalize(item.Name), item.MeasurementUnit, item.TotalAmount)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderToString возвращает готовый текст списка покупок
func (s *ShoppingListService) RenderToString(items []ShoppingListItem) string {
	var b strings.Builder
	_ = s.Render(&b, items)
	return b.String()
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

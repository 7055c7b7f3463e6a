package services

import (
	"errors"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"gorm.io/gorm"
)

// Relation - вид пользовательской связи с рецептом
type Relation string

const (
	RelationFavorite Relation = "favorite"
	RelationCart     Relation = "shopping_cart"
)

func (r Relation) title() string {
	if r == RelationFavorite {
		return "избранном"
	}
	return "списке покупок"
}

// RecipePreview - компактное представление рецепта в ответах
// на добавление в избранное или список покупок
type RecipePreview struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// MembershipService - общий add/remove для избранного и списка покупок
type MembershipService struct {
	DB *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

// Add добавляет рецепт в связь пользователя. Повторное добавление
// отличимо от первого: вторая попытка получает ConflictError.
func (s *MembershipService) Add(userID, recipeID uint, relation Relation) (*RecipePreview, error) {
	var recipe models.Recipe
	if err := s.DB.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(CodeRecipeNotFound, "Нет такого рецепта")
		}
		return nil, err
	}

	exists, err := s.exists(userID, recipeID, relation)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflictError(CodeAlreadyMember, "Рецепт уже есть в "+relation.title())
	}

	if err := s.create(userID, recipeID, relation); err != nil {
		// Гонка двух одновременных добавлений: выигрывает одно,
		// второе упирается в уникальный индекс
		if isUniqueViolation(err) {
			return nil, conflictError(CodeAlreadyMember, "Рецепт уже есть в "+relation.title())
		}
		return nil, err
	}

	return &RecipePreview{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, nil
}

// Remove удаляет связь. Отсутствие связи - отдельная ошибка,
// чтобы вызывающий отличал "не было" от "удалено".
func (s *MembershipService) Remove(userID, recipeID uint, relation Relation) error {
	var recipe models.Recipe
	if err := s.DB.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(CodeRecipeNotFound, "Нет такого рецепта")
		}
		return err
	}

	exists, err := s.exists(userID, recipeID, relation)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundError(CodeNotMember, "Такого рецепта нет в "+relation.title())
	}

	switch relation {
	case RelationFavorite:
		return s.DB.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{}).Error
	default:
		return s.DB.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.CartItem{}).Error
	}
}

// IsMember сообщает, есть ли рецепт в связи пользователя
func (s *MembershipService) IsMember(userID, recipeID uint, relation Relation) (bool, error) {
	return s.exists(userID, recipeID, relation)
}

func (s *MembershipService) exists(userID, recipeID uint, relation Relation) (bool, error) {
	var count int64
	q := s.DB.Model(s.model(relation)).Where("user_id = ? AND recipe_id = ?", userID, recipeID)
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MembershipService) create(userID, recipeID uint, relation Relation) error {
	switch relation {
	case RelationFavorite:
		return s.DB.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	default:
		return s.DB.Create(&models.CartItem{UserID: userID, RecipeID: recipeID}).Error
	}
}

func (s *MembershipService) model(relation Relation) interface{} {
	if relation == RelationFavorite {
		return &models.Favorite{}
	}
	return &models.CartItem{}
}

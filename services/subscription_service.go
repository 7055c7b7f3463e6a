package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"gorm.io/gorm"
)

// SubscriptionService - подписки пользователей друг на друга
type SubscriptionService struct {
	DB *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{DB: db}
}

// Follow подписывает subscriber на target. Подписка на себя
// и повторная подписка запрещены.
func (s *SubscriptionService) Follow(subscriberID, targetID uint) error {
	if subscriberID == targetID {
		return validationError(CodeSelfSubscription, "Вы не можете подписаться на самого себя")
	}
	var target models.User
	if err := s.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(CodeUserNotFound, "Пользователь не найден")
		}
		return err
	}

	following, err := s.IsFollowing(subscriberID, targetID)
	if err != nil {
		return err
	}
	if following {
		return conflictError(CodeAlreadyFollowing, "Вы уже подписаны на данного пользователя")
	}

	err = s.DB.Create(&models.Subscription{SubscriberID: subscriberID, TargetID: targetID}).Error
	if err != nil && isUniqueViolation(err) {
		return conflictError(CodeAlreadyFollowing, "Вы уже подписаны на данного пользователя")
	}
	return err
}

// Unfollow отписывает subscriber от target
func (s *SubscriptionService) Unfollow(subscriberID, targetID uint) error {
	var target models.User
	if err := s.DB.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(CodeUserNotFound, "Пользователь не найден")
		}
		return err
	}

	result := s.DB.Where("subscriber_id = ? AND target_id = ?", subscriberID, targetID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundError(CodeNotFollowing, "Вы не подписаны на данного пользователя")
	}
	return nil
}

func (s *SubscriptionService) IsFollowing(subscriberID, targetID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND target_id = ?", subscriberID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Followed возвращает страницу пользователей, на которых подписан subscriber
func (s *SubscriptionService) Followed(subscriberID uint, offset, limit int) ([]models.User, int64, error) {
	base := s.DB.Model(&models.User{}).
		Where("id IN (SELECT target_id FROM subscriptions WHERE subscriber_id = ?)", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := base.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// RecipesOf возвращает рецепты пользователя, новые первыми,
// с необязательным ограничением количества
func (s *SubscriptionService) RecipesOf(targetID uint, limit *int) ([]models.Recipe, error) {
	q := s.DB.Where("author_id = ?", targetID).Order("created_at DESC")
	if limit != nil {
		q = q.Limit(*limit)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeCount возвращает общее число рецептов пользователя
func (s *SubscriptionService) RecipeCount(targetID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Recipe{}).Where("author_id = ?", targetID).Count(&count).Error
	return count, err
}

// ParseRecipesLimit разбирает query-параметр recipes_limit.
// Пустая строка - без ограничения, не число или меньше нуля - ошибка.
func ParseRecipesLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil, validationError(CodeInvalidLimit, "recipes_limit должен быть целым числом")
	}
	return &limit, nil
}

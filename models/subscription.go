package models

import "time"

// Subscription - подписка одного пользователя на другого.
// Запрет подписки на самого себя проверяется в сервисе, не в базе.
type Subscription struct {
	ID           uint `gorm:"primarykey"`
	SubscriberID uint `gorm:"not null;uniqueIndex:idx_subscriber_target"`
	TargetID     uint `gorm:"not null;uniqueIndex:idx_subscriber_target"`
	CreatedAt    time.Time

	Subscriber User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Target     User `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
}

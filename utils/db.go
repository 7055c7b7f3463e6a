package utils

import "gorm.io/gorm"

var db *gorm.DB

// SetDB сохраняет глобальный *gorm.DB для контроллеров и сервисов
func SetDB(database *gorm.DB) {
	db = database
}

func GetDB() *gorm.DB {
	return db
}

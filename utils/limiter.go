package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Лимиты на выгрузку списка покупок: не чаще раза в 10 секунд
// и не больше 60 раз в час на пользователя.

func CanDownloadShoppingList(rdb *redis.Client, userID uint) (bool, string) {
	if rdb == nil {
		return true, ""
	}
	ctx := context.Background()
	burstKey := fmt.Sprintf("download_burst_%d", userID)
	hourKey := fmt.Sprintf("download_hour_%d", userID)
	if rdb.Exists(ctx, burstKey).Val() > 0 {
		return false, "Скачивать список можно не чаще 1 раза в 10 секунд"
	}
	cnt, _ := rdb.Get(ctx, hourKey).Int()
	if cnt >= 60 {
		return false, "Скачивать список можно не более 60 раз в час"
	}
	return true, ""
}

func MarkShoppingListDownloaded(rdb *redis.Client, userID uint) {
	if rdb == nil {
		return
	}
	ctx := context.Background()
	burstKey := fmt.Sprintf("download_burst_%d", userID)
	hourKey := fmt.Sprintf("download_hour_%d", userID)
	rdb.Set(ctx, burstKey, 1, 10*time.Second)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}

package cache

import (
	"context"
	"fmt"
	"time"

	"spa-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Key layout:
//   cart:{customer_id} -> JSON draft document
const cartKeyFmt = "cart:%s"

func CartKey(customerID string) string {
	return fmt.Sprintf(cartKeyFmt, customerID)
}

// InitRedis creates the redis client backing the draft store.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}

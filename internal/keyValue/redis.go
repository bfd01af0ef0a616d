package keyValue

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisStore struct {
	client *redis.Client
	sugar  *zap.SugaredLogger
}

var redisCtx = context.Background()

func (s *redisStore) Get(key string) (string, error) {
	s.sugar.Debugf("Getting value of key [%s] from redis", key)

	value, err := s.client.Get(redisCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return value, nil
}

func (s *redisStore) Set(key string, value string) error {
	s.sugar.Debugf("Setting value of key [%s] in redis", key)

	return s.client.Set(redisCtx, key, value, 0).Err()
}

func (s *redisStore) Delete(key string) error {
	s.sugar.Debugf("Deleting key [%s] from redis", key)

	return s.client.Del(redisCtx, key).Err()
}

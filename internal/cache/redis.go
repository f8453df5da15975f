package cache

import (
	"fmt"
	"reportdesk/internal/common"
	"time"

	"github.com/go-redis/redis/v7"
)

// Redis implements common.Cache on top of a Redis server
type Redis struct {
	Client      *redis.Client
	ServiceLogs chan<- common.ServiceLog
}

type NewRedisOpts struct {
	Addr        string
	Username    string
	Password    string
	ServiceLogs chan<- common.ServiceLog
}

func NewRedis(opts NewRedisOpts) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       0,
	})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at addr[%s]: %v", opts.Addr, err)
	}
	now := time.Now().Format("20060102150304")
	testKey := "init-test-" + now
	testValue := "test"
	if status := client.Set(testKey, testValue, 5*time.Second); status.Err() != nil {
		return nil, fmt.Errorf("failed to set a test key[%s]: %s", testKey, status.Err())
	}
	if res := client.Get(testKey); res.Err() != nil {
		return nil, fmt.Errorf("failed to receive test key[%s]: %s", testKey, res.Err())
	} else if res.Val() != testValue {
		return nil, fmt.Errorf("failed to receive the correct test value, received '%s'", res.String())
	}
	if res := client.Unlink(testKey); res.Err() != nil {
		return nil, fmt.Errorf("failed to unlink test key[%s]: %s", testKey, res.Err())
	}
	return &Redis{
		Client:      client,
		ServiceLogs: opts.ServiceLogs,
	}, nil
}

func (r *Redis) Set(key string, value string, ttl time.Duration) error {
	if status := r.Client.Set(key, value, ttl); status.Err() != nil {
		return fmt.Errorf("failed to set key[%s]: %w", key, status.Err())
	}
	return nil
}

func (r *Redis) SetNx(key string, value string, ttl time.Duration) (bool, error) {
	status := r.Client.SetNX(key, value, ttl)
	if status.Err() != nil {
		return false, fmt.Errorf("failed to setnx key[%s]: %w", key, status.Err())
	}
	return status.Val(), nil
}

func (r *Redis) Get(key string) (string, error) {
	res := r.Client.Get(key)
	if res.Err() != nil {
		if res.Err() == redis.Nil {
			return "", fmt.Errorf("key[%s]: %w", key, ErrorKeyNotFound)
		}
		return "", fmt.Errorf("failed to get key[%s]: %w", key, res.Err())
	}
	return res.Val(), nil
}

func (r *Redis) Scan(prefix string) ([]string, error) {
	keys := []string{}
	iterator := r.Client.Scan(0, prefix+"*", 0).Iterator()
	for iterator.Next() {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan prefix[%s]: %w", prefix, err)
	}
	return keys, nil
}

func (r *Redis) Del(key string) error {
	if res := r.Client.Unlink(key); res.Err() != nil {
		return fmt.Errorf("failed to unlink key[%s]: %w", key, res.Err())
	}
	return nil
}

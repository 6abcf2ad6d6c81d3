package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient to allow for easy mocking.
// The player store only relies on commands that also work on a cluster
// when all keys share a hash tag.
type Client interface {
	redis.UniversalClient
}

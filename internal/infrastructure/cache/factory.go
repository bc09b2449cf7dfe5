package cache

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StoreFactory picks a Store implementation for the running configuration
type StoreFactory struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithKeyPrefix overrides the redis key prefix
func WithKeyPrefix(prefix string) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.keyPrefix = prefix
	}
}

// NewStoreFactory creates a factory. client may be nil when redis is disabled or unreachable.
func NewStoreFactory(client *redis.Client, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a RedisStore when a client is available, else an InMemoryStore
func (f *StoreFactory) CreateStore() Store {
	if f.client != nil {
		f.logger.Info("using redis cache store")
		return NewRedisStore(f.client, f.keyPrefix)
	}
	f.logger.Warn("redis unavailable, falling back to in-memory cache store. " +
		"Cached reads are not shared across instances.")
	return NewInMemoryStore()
}

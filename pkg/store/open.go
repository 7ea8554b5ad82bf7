package store

import (
	"context"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNull   = "null"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// Open creates the backend named by cfg.Backend. An empty name means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		s, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNull:
		return NewNullStore(), nil
	case BackendRedis:
		s, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeStore, err, "open redis store")
		}
		return s, nil
	case BackendMongo:
		s, err := NewMongoStore(ctx, cfg.Mongo)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeStore, err, "open mongo store")
		}
		return s, nil
	}
	return nil, errs.New(errs.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
}

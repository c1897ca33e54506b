package cache

import (
	"context"
	"fmt"
)

// Backend names a [Store] implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
	BackendMemory Backend = "memory"
	BackendNone   Backend = "none"
)

// Backends lists every supported backend.
var Backends = []Backend{BackendFile, BackendRedis, BackendMongo, BackendMemory, BackendNone}

// Options selects and configures a store backend.
type Options struct {
	Backend       Backend
	Path          string // file
	RedisAddr     string // redis
	RedisKey      string // redis
	MongoURI      string // mongo
	MongoDatabase string // mongo
}

// Open creates the store described by opts. An empty backend selects the
// file store at [DefaultPath].
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		path := opts.Path
		if path == "" {
			path = DefaultPath()
		}
		return NewFileStore(path)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisKey)
	case BackendMongo:
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNone:
		return NullStore{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

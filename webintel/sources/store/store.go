package store

import (
	"context"
	"fmt"

	"webintel/webintel/config"
	"webintel/webintel/sources/psql"
	"webintel/webintel/types"
	"webintel/webintel/utils/logging"
)

// Store caches analyzed companies and answered questions. Getters return
// nil, nil on a miss.
type Store interface {
	GetCompany(ctx context.Context, url string) (*types.BusinessDetails, error)
	SaveCompany(ctx context.Context, url string, details *types.BusinessDetails) error
	GetAnswer(ctx context.Context, url, question string) (*types.QuestionAnswer, error)
	SaveAnswer(ctx context.Context, url, question string, answer types.QuestionAnswer) error
	Exists(ctx context.Context, url string) (bool, error)
	Close() error
}

// New opens the backend named by cfg.StoreBackend.
func New(ctx context.Context, cfg config.Config, logger *logging.Loggers) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreJSON, "":
		return NewJSONStore(cfg.DBPath, logger)
	case config.StorePostgres, config.StoreSQLite:
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db), nil
	case config.StoreRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

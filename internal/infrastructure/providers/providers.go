package providers

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kitadi/kitadi/internal/config"
	"github.com/kitadi/kitadi/internal/infrastructure/database"
)

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.MigratePostgres(db)
}

// NewRedis creates the shared key-value client. With no address
// configured it returns nil and the services fall back to their
// stateless form: no token denylist, no event publishing.
func NewRedis(conf config.Server) *redis.Client {
	if conf.RedisAddr == "" {
		return nil
	}
	return database.NewRedis(conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
}

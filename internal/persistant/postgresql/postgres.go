package postgresql

import (
	"context"
	"fmt"

	"github.com/aniladanir/retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens a postgres session and auto migrates given models
func Initialize(ctx context.Context, connStr string, maxAttempts int, models []any) (*gorm.DB, error) {
	return Open(ctx, postgres.Open(connStr), maxAttempts, models)
}

// Open retries connecting through the given dialector up to maxAttempts times,
// then auto migrates given models
func Open(ctx context.Context, dialector gorm.Dialector, maxAttempts int, models []any) (db *gorm.DB, err error) {
	retrier, err := retry.New(retry.WithMaxAttemps(maxAttempts))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize retrier: %w", err)
	}

	// retry connect
	connected := <-retrier.Retry(ctx, func(attempt int) (terminate bool) {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		return err == nil
	}, true)
	if !connected {
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDb, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDb.Close()
}

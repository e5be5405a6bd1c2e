package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"swing_backend/internal/app/di"
	"swing_backend/internal/feature/prices/adapters/csvfile"
	"swing_backend/internal/feature/prices/adapters/tushare"
	"swing_backend/internal/feature/prices/domain/entity"
	pricesusecase "swing_backend/internal/feature/prices/usecase"
	"swing_backend/internal/platform/config"
	platformdb "swing_backend/internal/platform/db"
	platformredis "swing_backend/internal/platform/redis"
)

// storeOpener opens the price store. close releases its connections.
type storeOpener func(ctx context.Context, cfg *config.Config) (repo pricesusecase.PriceRepository, close func(), err error)

func newRootCmd(open storeOpener) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "swingctl",
		Short:        "Classify daily closes into swing columns",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (defaults to $SWING_CONFIG)")

	loadConfig := func() (*config.Config, error) {
		path := cfgPath
		if path == "" {
			path = os.Getenv("SWING_CONFIG")
		}
		return config.Load(path)
	}

	root.AddCommand(classifyCmd(loadConfig))
	root.AddCommand(importCmd(loadConfig, open))
	return root
}

// readPrices reads file as csv or as a tushare daily response. "auto" picks
// the format from the extension.
func readPrices(file, format string) ([]entity.DailyPrice, error) {
	if format == "" || format == "auto" {
		format = "csv"
		if strings.EqualFold(filepath.Ext(file), ".json") {
			format = "tushare"
		}
	}

	switch format {
	case "csv":
		return csvfile.ReadFile(file)
	case "tushare":
		return tushare.ReadFile(file)
	default:
		return nil, fmt.Errorf("unknown format %q (want auto, csv or tushare)", format)
	}
}

// openStore connects to the database and, when available, the Redis cache.
func openStore(ctx context.Context, cfg *config.Config) (pricesusecase.PriceRepository, func(), error) {
	db, err := platformdb.OpenDB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	var rdb *redis.Client
	if c, err := platformredis.NewRedisClient(ctx, platformredis.LoadConfigFromEnv()); err == nil {
		rdb = c
	}

	closeFn := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return di.NewPriceRepository(db, rdb, cfg), closeFn, nil
}

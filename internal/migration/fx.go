package migration

import (
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)

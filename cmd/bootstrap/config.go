package bootstrap

import (
	"carrental/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-configs for constructors that only need a slice of the whole.
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		func(cfg config.Config) config.StorageConfig { return cfg.Storage },
	),
)

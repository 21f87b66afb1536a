package components

import (
	"carrental/internal/infra/cache"
	"carrental/internal/infra/notify"
	repo_impl "carrental/internal/infra/repository"
	"carrental/internal/infra/storage"
	"carrental/internal/usecase/commands"
	"carrental/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingLedger)),
			fx.As(new(queries.BookingFinder)),
			fx.As(new(queries.OverlapCounter)),
			fx.As(new(queries.BookingWindowReader)),
		),
		fx.Annotate(
			repo_impl.NewCarTypeRepository,
			fx.As(new(commands.CarTypeFinder)),
			fx.As(new(queries.CarTypeReader)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.CallerDirectory)),
		),
		fx.Annotate(
			cache.NewRedisStore,
			fx.As(new(queries.AvailabilityStore)),
		),
		fx.Annotate(
			storage.NewCloudinaryStorage,
			fx.As(new(commands.LicenseStorage)),
		),
		fx.Annotate(
			notify.NewSMTPSender,
			fx.As(new(commands.EmailSender)),
		),
	),
)

package main

import (
	"context"
	"log/slog"
	"os"

	"sliders/config"
	"sliders/internal/delivery"
	"sliders/internal/delivery/http"
	"sliders/internal/delivery/http/middleware"
	"sliders/internal/delivery/http/router/handler"
	"sliders/internal/domain/service"
	"sliders/internal/infra/auth"
	infraingest "sliders/internal/infra/ingest"
	logs "sliders/internal/infra/log"
	"sliders/internal/infra/persistence/postgres"
	"sliders/internal/infra/proof"
	"sliders/internal/infra/pubsub"
	"sliders/internal/infra/qrcode"
	"sliders/internal/infra/timeadjust"
	"sliders/internal/ingest"
	"sliders/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewResultRepository,
			postgres.NewIdentityRepository,
			postgres.NewChallengeRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewJWTService,
			auth.NewClaimTokenService,
			proof.NewDNSResolver,
			proof.NewPageFetcher,
			proof.NewChallengeVerifier,
			timeadjust.NewRemoteTimeAdjuster,
			newIngestRouter,
			newClaimQRService,
		),
	)
}

// newIngestRouter builds the parser endpoint chain from configuration.
func newIngestRouter(cfg *config.Config, logger *slog.Logger) *ingest.Router {
	return ingest.NewRouter(infraingest.NewParserClients(cfg), logger)
}

// newClaimQRService creates a QR code service with dependency injection
func newClaimQRService(cfg *config.Config) service.ClaimQRService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewClaimQRService(256, "M")
	}

	return qrcode.NewClaimQRService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewVerificationService,
			impl.NewClaimService,
			impl.NewResultsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewVerificationHandler,
			handler.NewClaimHandler,
			handler.NewResultsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

package main

import (
	"context"
	"flag"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kitadi/kitadi/internal/config"
	"github.com/kitadi/kitadi/internal/infrastructure/providers"
	"github.com/kitadi/kitadi/internal/infrastructure/repository"
	"github.com/kitadi/kitadi/internal/interface/rest"
	"github.com/kitadi/kitadi/internal/interface/rest/middleware"
	"github.com/kitadi/kitadi/internal/service"
	"github.com/kitadi/kitadi/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := providers.MigrateDatabase(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	rdb := providers.NewRedis(conf.Server)

	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	contributionRepo := repository.NewContributionRepository(db)

	authSvc := service.NewAuthService(conf.Auth.Secret, conf.Auth.Expiry, rdb)
	eventSvc := service.NewEventService(rdb)

	authUC := usecase.NewAuthUsecase(userRepo, authSvc)
	userUC := usecase.NewUserUsecase(userRepo, contributionRepo)
	campaignUC := usecase.NewCampaignUsecase(campaignRepo, contributionRepo)
	contributionUC := usecase.NewContributionUsecase(contributionRepo, campaignRepo, userRepo, eventSvc)

	handler := rest.NewHandler(authUC, userUC, campaignUC, contributionUC, authSvc)
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	if conf.Server.EnableTrace {
		cleanup, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			log.Fatalf("failed to setup tracer: %v", err)
		}
		defer cleanup()
		e.Use(otelecho.Middleware("kitadi"))
	}

	handler.RegisterRoutes(e, authMiddleware)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Printf("tracer shutdown failed: %v", err)
		}
	}, nil
}

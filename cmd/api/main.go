package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tu-usuario/municare-api/internal/application/analytics"
	"github.com/tu-usuario/municare-api/internal/application/auth"
	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/reports"
	"github.com/tu-usuario/municare-api/internal/application/uploads"
	"github.com/tu-usuario/municare-api/internal/application/usecase"
	"github.com/tu-usuario/municare-api/internal/infrastructure/dynamo"
	infraemail "github.com/tu-usuario/municare-api/internal/infrastructure/email"
	infrapdf "github.com/tu-usuario/municare-api/internal/infrastructure/pdf"
	infrasms "github.com/tu-usuario/municare-api/internal/infrastructure/sms"
	httpRouter "github.com/tu-usuario/municare-api/internal/interfaces/http"
	"github.com/tu-usuario/municare-api/pkg/config"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	dynamoClient, err := dynamo.NewClient(ctx, cfg.Dynamo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a DynamoDB")
	}
	tables := dynamo.NewTables(cfg.Dynamo.TablePrefix)
	batchWriter := dynamo.NewBatchWriter(dynamoClient, dynamo.BatchConfig{
		BatchSize:   cfg.Upload.BatchSize,
		MaxRetries:  cfg.Upload.MaxRetries,
		BaseDelayMs: cfg.Upload.BaseDelayMs,
	}, log)

	customerRepo := dynamo.NewCustomerRepository(dynamoClient, tables.Customers)
	queryRepo := dynamo.NewQueryRepository(dynamoClient, tables.Queries)
	queryStatsRepo := dynamo.NewQueryStatsRepository(dynamoClient, tables.QueryStats)
	messagingRepo := dynamo.NewMessagingRepository(dynamoClient, tables.EmailBatches, tables.EmailLogs, batchWriter)
	readingRepo := dynamo.NewMeterReadingRepository(dynamoClient, tables.MeterReadings)
	usageStatsRepo := dynamo.NewUsageStatsRepository(dynamoClient, tables.UsageStats)
	agedRepo := dynamo.NewAgedRepository(dynamoClient, tables.Aged, tables.Levied, batchWriter)
	userRepo := dynamo.NewUserRepository(dynamoClient, tables.Users)
	activityRepo := dynamo.NewActivityRepository(dynamoClient, tables.Activities)

	emailSender := infraemail.NewSendGridSender(cfg.Email.SendGridKey, cfg.Email.FromName, cfg.Email.FromEmail)

	// Proveedor de SMS — opcional: sin base URL/token el cliente queda
	// deshabilitado y las notificaciones se omiten con un warning.
	var smsSender campaign.SMSSender
	smsClient := infrasms.NewHTTPClient(cfg.SMS.BaseURL, cfg.SMS.Token, cfg.SMS.SenderID)
	if smsClient.Enabled() {
		smsSender = smsClient
	}

	customerUC := usecase.NewCustomerUseCase(customerRepo, agedRepo)
	queryUC := usecase.NewQueryUseCase(queryRepo, queryStatsRepo, customerRepo, smsSender, log)
	readingUC := usecase.NewReadingUseCase(readingRepo, usageStatsRepo, customerRepo, log)
	campaignUC := campaign.NewCampaignUseCase(messagingRepo, customerRepo, emailSender, smsSender, campaign.Config{
		BatchSize: cfg.Email.BatchSize,
	}, log)
	uploadUC := uploads.NewUploadUseCase(agedRepo, log)
	dashboardUC := appanalytics.NewDashboardUseCase(queryStatsRepo, usageStatsRepo, agedRepo, messagingRepo)

	// PDF: informe de antigüedad de saldos del período
	pdfGenerator := infrapdf.NewMarotoAgedReportGenerator(cfg.App.Name)
	reportUC := reports.NewReportUseCase(agedRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120, // las campañas grandes responden al final
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Municare API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:   customerUC,
		QueryUC:      queryUC,
		ReadingUC:    readingUC,
		CampaignUC:   campaignUC,
		UploadUC:     uploadUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		AuthUC:       authUC,
		ActivityRepo: activityRepo,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

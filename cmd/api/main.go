package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ravij-p/sandhan-backend/api/routes"
	"github.com/Ravij-p/sandhan-backend/internal/config"
	"github.com/Ravij-p/sandhan-backend/internal/handlers"
	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	mongorepo "github.com/Ravij-p/sandhan-backend/internal/repositories/mongodb"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/Ravij-p/sandhan-backend/pkg/mailer"
	"github.com/Ravij-p/sandhan-backend/pkg/mongodb"
	"github.com/Ravij-p/sandhan-backend/pkg/razorpay"
	"github.com/Ravij-p/sandhan-backend/pkg/storage"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional, deployments set real environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT_SECRET is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	var studentRepo repositories.StudentRepository = mongorepo.NewStudentRepository(db)
	var adminRepo repositories.AdminRepository = mongorepo.NewAdminRepository(db)
	var courseRepo repositories.CourseRepository = mongorepo.NewCourseRepository(db)
	var seriesRepo repositories.TestSeriesRepository = mongorepo.NewTestSeriesRepository(db)
	var videoRepo repositories.VideoRepository = mongorepo.NewVideoRepository(db)
	var docRepo repositories.DocumentRepository = mongorepo.NewDocumentRepository(db)
	var upiRepo repositories.UpiPaymentRepository = mongorepo.NewUpiPaymentRepository(db)
	var ledgerRepo repositories.PaymentRecordRepository = mongorepo.NewPaymentRecordRepository(db)
	var adRepo repositories.HomepageAdRepository = mongorepo.NewHomepageAdRepository(db)
	var otpRepo repositories.OTPRepository = mongorepo.NewOTPRepository(db)

	// External clients
	gateway := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	var mail mailer.Sender
	if cfg.Email.MockEmail || cfg.Email.SendgridAPIKey == "" {
		mail = mailer.MockSender{}
	} else {
		mail = mailer.NewSendgridSender(cfg.Email.SendgridAPIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	}

	signers := map[string]storage.ContentSigner{}
	if cfg.Cloudinary.CloudName != "" {
		cloudinarySigner, err := storage.NewCloudinarySigner(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			slog.Error("failed to initialize Cloudinary", "error", err)
			os.Exit(1)
		}
		signers[models.ProviderCloudinary] = cloudinarySigner
	}
	if cfg.R2.AccountID != "" {
		r2Signer, err := storage.NewR2Signer(context.Background(), cfg.R2.AccountID, cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.Bucket)
		if err != nil {
			slog.Error("failed to initialize R2", "error", err)
			os.Exit(1)
		}
		signers[models.ProviderR2] = r2Signer
	}
	prober := storage.NewProber(5*time.Second, 20*time.Second)

	// Services
	authService := services.NewAuthService(studentRepo, adminRepo, otpRepo, mail, cfg)
	catalogService := services.NewCatalogService(courseRepo, seriesRepo)
	paymentService := services.NewPaymentService(studentRepo, courseRepo, ledgerRepo, gateway, cfg)
	upiService := services.NewUpiPaymentService(studentRepo, courseRepo, upiRepo, cfg)
	contentService := services.NewContentService(studentRepo, courseRepo, videoRepo, docRepo, signers, prober)
	studentService := services.NewStudentService(studentRepo, courseRepo, upiRepo, ledgerRepo)
	adService := services.NewAdService(adRepo)

	// Handlers
	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Payment: handlers.NewPaymentHandler(paymentService),
		Upi:     handlers.NewUpiPaymentHandler(upiService),
		Content: handlers.NewContentHandler(contentService),
		Student: handlers.NewStudentHandler(studentService),
		Ad:      handlers.NewAdHandler(adService),
	}

	router := routes.SetupRouter(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

package main

import (
	appcontext "github.com/SeakMengs/CertVault/internal/app_context"
	"github.com/SeakMengs/CertVault/internal/auth"
	"github.com/SeakMengs/CertVault/internal/config"
	"github.com/SeakMengs/CertVault/internal/controller"
	"github.com/SeakMengs/CertVault/internal/database"
	"github.com/SeakMengs/CertVault/internal/env"
	filestorage "github.com/SeakMengs/CertVault/internal/file_storage"
	"github.com/SeakMengs/CertVault/internal/issuance"
	"github.com/SeakMengs/CertVault/internal/mailer"
	"github.com/SeakMengs/CertVault/internal/middleware"
	ratelimiter "github.com/SeakMengs/CertVault/internal/rate_limiter"
	"github.com/SeakMengs/CertVault/internal/repository"
	"github.com/SeakMengs/CertVault/internal/route"
	"github.com/SeakMengs/CertVault/internal/util"
	"github.com/SeakMengs/CertVault/pkg/certgen"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	mail := mailer.NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, s3)

	renderCfg := certgen.NewDefaultConfig()
	renderCfg.FontDir = cfg.App.FontDir
	renderCfg.AssetFetchTimeout = cfg.App.AssetFetchTimeout
	renderer, err := certgen.NewRenderer(*renderCfg)
	if err != nil {
		logger.Error("Error loading certificate fonts")
		logger.Panic(err)
	}

	processor := issuance.NewRowProcessor(issuance.NewConfig(&cfg), renderer, repo, s3, logger)
	ingestor := issuance.NewBatchIngestor(processor, logger)

	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Ingestor:   ingestor,
		Logger:     logger,
		Mailer:     mail,
		JWTService: jwtService,
		S3:         s3,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.ENV == "production" {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	// The verify page lives at the site root so printed QR codes resolve
	// without an /api prefix.
	route.Verify(&r.RouterGroup, _controller.Verify)

	rApi := r.Group("/api")

	route.V1_Certificates(rApi, _controller.Certificate, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}

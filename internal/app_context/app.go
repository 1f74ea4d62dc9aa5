package appcontext

import (
	"github.com/SeakMengs/CertVault/internal/auth"
	"github.com/SeakMengs/CertVault/internal/config"
	"github.com/SeakMengs/CertVault/internal/issuance"
	"github.com/SeakMengs/CertVault/internal/mailer"
	"github.com/SeakMengs/CertVault/internal/repository"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Ingestor drives spreadsheet-based certificate issuance.
	Ingestor *issuance.BatchIngestor

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// JWTService verifies staff tokens minted by the institution's identity service.
	JWTService auth.JWTInterface

	S3 *minio.Client
}

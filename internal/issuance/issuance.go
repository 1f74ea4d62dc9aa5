// Package issuance drives spreadsheet-based certificate issuance: the batch
// ingestor validates and walks the uploaded sheet, the row processor turns
// one row into a rendered artifact plus its metadata record.
package issuance

import (
	"strings"

	"github.com/SeakMengs/CertVault/internal/config"
)

// Config carries the issuance settings, passed in at construction instead of
// being read from the environment inside the pipeline.
type Config struct {
	PublicBaseURL string
	Bucket        string
	BucketPublic  bool
	Minio         config.MinioConfig
}

func NewConfig(cfg *config.Config) Config {
	return Config{
		PublicBaseURL: cfg.App.PublicBaseURL,
		Bucket:        cfg.App.CertificateBucket,
		BucketPublic:  cfg.App.BucketPublic,
		Minio:         cfg.Minio,
	}
}

// ValidationError marks problems with the uploaded sheet itself, reported
// before any row produces side effects.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// VerifyURL derives the public verification URL for a certificate id. The
// id is the only variable part; records never carry an independently set
// verify URL.
func VerifyURL(baseURL, certificateId string) string {
	return strings.TrimRight(baseURL, "/") + "/verify/" + certificateId
}

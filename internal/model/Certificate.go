package model

import (
	"context"
	"errors"
	"time"

	"github.com/SeakMengs/CertVault/internal/constant"
	"github.com/minio/minio-go/v7"
)

// Certificate is the persisted record of one issued certificate. Rows are
// written once by the row processor and never updated by this service;
// status transitions (revocation) happen through administrative tooling.
type Certificate struct {
	BaseModel
	BatchID          string                     `gorm:"type:text;index" json:"batchId"`
	InstitutionName  string                     `gorm:"type:text" json:"institutionName"`
	FullName         string                     `gorm:"type:text;not null" json:"fullName"`
	Program          string                     `gorm:"type:text" json:"program"`
	CertificateTitle string                     `gorm:"type:text" json:"certificateTitle"`
	Cgpa             string                     `gorm:"type:text" json:"cgpa"`
	ImageUrl         string                     `gorm:"type:text" json:"imageUrl"`
	LogoUrl          string                     `gorm:"type:text" json:"logoUrl"`
	PdfPath          string                     `gorm:"type:text;not null" json:"-"`
	PdfUrl           string                     `gorm:"type:text" json:"pdfUrl,omitempty"`
	VerifyUrl        string                     `gorm:"type:text;not null" json:"verifyUrl"`
	Status           constant.CertificateStatus `gorm:"type:text;default:valid" json:"status"`
	CreatedBy        string                     `gorm:"type:text" json:"createdBy,omitempty"`
}

func (c Certificate) TableName() string {
	return "certificates"
}

// ToPresignedUrl resolves a short-lived download URL for the stored artifact.
// PdfPath stays internal; only the signed URL ever leaves the service.
func (c Certificate) ToPresignedUrl(ctx context.Context, s3 *minio.Client, bucket string, expiry time.Duration) (string, error) {
	if bucket == "" || c.PdfPath == "" {
		return "", errors.New("bucket name and pdf path cannot be empty")
	}

	presignedURL, err := s3.PresignedGetObject(ctx, bucket, c.PdfPath, expiry, nil)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}

// DownloadUrl returns the direct public URL when the bucket is public,
// otherwise a presigned URL bounded by expiry.
func (c Certificate) DownloadUrl(ctx context.Context, s3 *minio.Client, bucket string, expiry time.Duration) (string, error) {
	if c.PdfUrl != "" {
		return c.PdfUrl, nil
	}

	return c.ToPresignedUrl(ctx, s3, bucket, expiry)
}

package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/CertVault/internal/constant"
	"github.com/SeakMengs/CertVault/internal/model"
	"github.com/SeakMengs/CertVault/internal/repository"
	"github.com/SeakMengs/CertVault/internal/util"
	"github.com/SeakMengs/CertVault/pkg/certgen"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Row is one data row of the recipient sheet, in sheet order.
type Row struct {
	Number           int
	FullName         string
	Program          string
	CertificateTitle string
	Cgpa             string
	ImageUrl         string
}

// BatchContext holds the values shared by every row of one ingest: the
// institution fields from the upload form and the issue date, which is the
// processing date rather than anything per-row.
type BatchContext struct {
	BatchID         string
	InstitutionName string
	LogoUrl         string
	IssueDate       time.Time
	ActorID         string
}

type Processor interface {
	Process(ctx context.Context, row Row, batch BatchContext) (*model.Certificate, error)
}

type RowProcessor struct {
	cfg      Config
	renderer *certgen.Renderer
	repo     *repository.Repository
	s3       *minio.Client
	logger   *zap.SugaredLogger
}

func NewRowProcessor(cfg Config, renderer *certgen.Renderer, repo *repository.Repository, s3 *minio.Client, logger *zap.SugaredLogger) *RowProcessor {
	return &RowProcessor{
		cfg:      cfg,
		renderer: renderer,
		repo:     repo,
		s3:       s3,
		logger:   logger,
	}
}

// Process issues one certificate: new id, render, upload, record. Any error
// fails this row only; the caller decides what that means for the batch.
// When the upload succeeds but the metadata write fails, the artifact is
// left in the bucket and logged for reconciliation rather than deleted.
func (rp *RowProcessor) Process(ctx context.Context, row Row, batch BatchContext) (*model.Certificate, error) {
	certificateId := uuid.NewString()
	verifyUrl := VerifyURL(rp.cfg.PublicBaseURL, certificateId)

	pdf, err := rp.renderer.Render(ctx, certgen.Fields{
		CertificateID:    certificateId,
		InstitutionName:  batch.InstitutionName,
		FullName:         row.FullName,
		Program:          row.Program,
		CertificateTitle: row.CertificateTitle,
		CGPA:             row.Cgpa,
		LogoURL:          batch.LogoUrl,
		ImageURL:         row.ImageUrl,
		VerifyURL:        verifyUrl,
		IssueDate:        batch.IssueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate for row %d: %w", row.Number, err)
	}

	objectName := util.ToCertificateObjectName(certificateId, util.SanitizeRecipientName(row.FullName)+".pdf")

	if _, err := util.UploadBytesToS3(ctx, pdf, objectName, "application/pdf", &util.FileUploadOptions{
		Bucket: rp.cfg.Bucket,
		S3:     rp.s3,
	}); err != nil {
		return nil, fmt.Errorf("failed to store certificate for row %d: %w", row.Number, err)
	}

	pdfUrl := ""
	if rp.cfg.BucketPublic {
		pdfUrl = util.PublicObjectURL(rp.cfg.Minio, rp.cfg.Bucket, objectName)
	}

	cert := &model.Certificate{
		BaseModel:        model.BaseModel{ID: certificateId},
		BatchID:          batch.BatchID,
		InstitutionName:  batch.InstitutionName,
		FullName:         row.FullName,
		Program:          row.Program,
		CertificateTitle: row.CertificateTitle,
		Cgpa:             row.Cgpa,
		ImageUrl:         row.ImageUrl,
		LogoUrl:          batch.LogoUrl,
		PdfPath:          objectName,
		PdfUrl:           pdfUrl,
		VerifyUrl:        verifyUrl,
		Status:           constant.CertificateStatusValid,
		CreatedBy:        batch.ActorID,
	}

	if _, err := rp.repo.Certificate.Create(ctx, nil, cert); err != nil {
		rp.logger.Errorf("Certificate metadata write failed, artifact %s/%s is orphaned: %v", rp.cfg.Bucket, objectName, err)
		return nil, fmt.Errorf("failed to record certificate for row %d: %w", row.Number, err)
	}

	return cert, nil
}

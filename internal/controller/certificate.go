package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/SeakMengs/CertVault/internal/constant"
	"github.com/SeakMengs/CertVault/internal/issuance"
	"github.com/SeakMengs/CertVault/internal/mailer"
	"github.com/SeakMengs/CertVault/internal/model"
	"github.com/SeakMengs/CertVault/internal/util"
	"github.com/SeakMengs/CertVault/pkg/certgen"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

const (
	ErrCertificateIdRequired = "certificate id is required"
	ErrCertificateNotFound   = "certificate not found"
	ErrBatchIdRequired       = "batch id is required"
	ErrBatchNotFound         = "no certificates found for this batch"
	ErrSheetFileRequired     = "spreadsheet file is required"
)

type CertificateController struct {
	*baseController
}

// Certificate is the API shape of one issued record. The stored object key
// never leaves the service; downloads go through downloadUrl.
type Certificate struct {
	ID               string                     `json:"id"`
	BatchID          string                     `json:"batchId"`
	InstitutionName  string                     `json:"institutionName"`
	FullName         string                     `json:"fullName"`
	Program          string                     `json:"program"`
	CertificateTitle string                     `json:"certificateTitle"`
	Cgpa             string                     `json:"cgpa"`
	Status           constant.CertificateStatus `json:"status"`
	VerifyUrl        string                     `json:"verifyUrl"`
	DownloadUrl      string                     `json:"downloadUrl"`
	CreatedAt        string                     `json:"createdAt"`
}

func (cc CertificateController) toCertificateResponse(ctx context.Context, cert model.Certificate) Certificate {
	downloadUrl, err := cert.DownloadUrl(ctx, cc.app.S3, cc.app.Config.App.CertificateBucket, cc.app.Config.App.PresignExpiry)
	if err != nil {
		// The record is still useful without a link; log and move on.
		cc.app.Logger.Errorf("Failed to resolve download url for certificate %s: %v", cert.ID, err)
		downloadUrl = ""
	}

	return Certificate{
		ID:               cert.ID,
		BatchID:          cert.BatchID,
		InstitutionName:  cert.InstitutionName,
		FullName:         cert.FullName,
		Program:          cert.Program,
		CertificateTitle: cert.CertificateTitle,
		Cgpa:             cert.Cgpa,
		Status:           cert.Status,
		VerifyUrl:        cert.VerifyUrl,
		DownloadUrl:      downloadUrl,
		CreatedAt:        cert.CreatedAt.String(),
	}
}

func (cc CertificateController) IngestBatch(ctx *gin.Context) {
	type IngestBatchRequest struct {
		InstitutionName string `form:"institutionName" binding:"required,strNotEmpty"`
		LogoUrl         string `form:"logoUrl" binding:"omitempty"`
	}

	type IngestBatchResponse struct {
		BatchID      string        `json:"batchId"`
		Count        int           `json:"count"`
		Certificates []Certificate `json:"certificates"`
	}

	var body IngestBatchRequest
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request body", util.GenerateErrorMessages(err), nil)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Spreadsheet file is required", util.GenerateErrorMessages(errors.New(ErrSheetFileRequired), "file"), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to open uploaded file", util.GenerateErrorMessages(err, "file"), nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Failed to read uploaded file", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	result, err := cc.app.Ingestor.Ingest(ctx, data, fileHeader.Filename, body.InstitutionName, body.LogoUrl, user.ID)
	if err != nil {
		var ve *issuance.ValidationError
		if errors.As(err, &ve) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid spreadsheet", util.GenerateErrorMessages(ve, "file"), nil)
			return
		}

		cc.app.Logger.Errorf("Batch ingest failed: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to issue certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	cc.notifyBatchCompleted(user.Email, user.FirstName, body.InstitutionName, result)

	certificates := make([]Certificate, len(result.Certificates))
	for i, cert := range result.Certificates {
		certificates[i] = cc.toCertificateResponse(ctx, *cert)
	}

	util.ResponseSuccess(ctx, IngestBatchResponse{
		BatchID:      result.BatchID,
		Count:        result.Count(),
		Certificates: certificates,
	})
}

// notifyBatchCompleted sends the batch summary email in the background. Mail
// is best effort; a send failure never fails the batch.
func (cc CertificateController) notifyBatchCompleted(toEmail, toUsername, institutionName string, result *issuance.BatchResult) {
	if cc.app.Config.Mail.SEND_GRID.API_KEY == "" || toEmail == "" {
		return
	}

	go func() {
		_, err := cc.app.Mailer.Send(mailer.BATCH_SUMMARY_TEMPLATE, toUsername, toEmail, mailer.BatchSummaryData{
			Username:        toUsername,
			InstitutionName: institutionName,
			Count:           result.Count(),
			BatchID:         result.BatchID,
		})
		if err != nil {
			cc.app.Logger.Errorf("Failed to send batch summary email for batch %s: %v", result.BatchID, err)
		}
	}()
}

func (cc CertificateController) GetCertificates(ctx *gin.Context) {
	type GetCertificatesQuery struct {
		Page     uint `form:"page"`
		PageSize uint `form:"pageSize"`
	}

	type GetCertificatesResponse struct {
		Certificates []Certificate `json:"certificates"`
		Total        int64         `json:"total"`
		TotalPage    int           `json:"totalPage"`
		Page         uint          `json:"page"`
		PageSize     uint          `json:"pageSize"`
	}

	var query GetCertificatesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid query parameters", util.GenerateErrorMessages(err), nil)
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = constant.DefaultPageSize
	}

	certificates, total, err := cc.app.Repository.Certificate.GetAll(ctx, nil, query.Page, query.PageSize)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	certificateList := make([]Certificate, len(certificates))
	for i, cert := range certificates {
		certificateList[i] = cc.toCertificateResponse(ctx, cert)
	}

	util.ResponseSuccess(ctx, GetCertificatesResponse{
		Certificates: certificateList,
		Total:        total,
		TotalPage:    util.CalculateTotalPage(total, query.PageSize),
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
}

func (cc CertificateController) DownloadCertificate(ctx *gin.Context) {
	certificateId := ctx.Params.ByName("certificateId")
	if certificateId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Certificate id is required", util.GenerateErrorMessages(errors.New(ErrCertificateIdRequired), "certificateId"), nil)
		return
	}

	cert, err := cc.app.Repository.Certificate.GetById(ctx, nil, certificateId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(errors.New(ErrCertificateNotFound), "certificateId"), nil)
			return
		}

		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	object, err := cc.app.S3.GetObject(ctx, cc.app.Config.App.CertificateBucket, cert.PdfPath, minio.GetObjectOptions{})
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificate file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer object.Close()

	info, err := object.Stat()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read certificate file info", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(cert.PdfPath)))
	io.Copy(ctx.Writer, object)
}

func (cc CertificateController) DownloadBatchZip(ctx *gin.Context) {
	batchId := ctx.Params.ByName("batchId")
	if batchId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Batch id is required", util.GenerateErrorMessages(errors.New(ErrBatchIdRequired), "batchId"), nil)
		return
	}

	certificates, err := cc.app.Repository.Certificate.GetByBatchId(ctx, nil, batchId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	if len(certificates) == 0 {
		util.ResponseFailed(ctx, http.StatusNotFound, "No certificates found for this batch", util.GenerateErrorMessages(errors.New(ErrBatchNotFound), "batchId"), nil)
		return
	}

	tempOutDir, err := os.MkdirTemp("", "certvault_batch_zip_*")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error creating temporary directory", util.GenerateErrorMessages(err), nil)
		return
	}
	defer os.RemoveAll(tempOutDir)

	pdfDir := filepath.Join(tempOutDir, batchId)
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error creating temporary directory", util.GenerateErrorMessages(err), nil)
		return
	}

	for _, cert := range certificates {
		// Unique prefix; sanitized recipient names can collide within a batch.
		localPath := filepath.Join(pdfDir, util.AddUniquePrefixToFileName(filepath.Base(cert.PdfPath)))
		if err := util.DownloadS3Object(ctx, cc.app.S3, cc.app.Config.App.CertificateBucket, cert.PdfPath, localPath); err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Error downloading certificate file", util.GenerateErrorMessages(err), nil)
			return
		}
	}

	zipPath := filepath.Join(tempOutDir, fmt.Sprintf("%s.zip", batchId))
	if err := util.ZipDir(pdfDir, zipPath); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error creating zip file", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.FileAttachment(zipPath, fmt.Sprintf("certificates_%s.zip", batchId))
}

// DownloadBatchMerged serves the whole batch as one PDF, pages in issue order.
func (cc CertificateController) DownloadBatchMerged(ctx *gin.Context) {
	batchId := ctx.Params.ByName("batchId")
	if batchId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Batch id is required", util.GenerateErrorMessages(errors.New(ErrBatchIdRequired), "batchId"), nil)
		return
	}

	certificates, err := cc.app.Repository.Certificate.GetByBatchId(ctx, nil, batchId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	if len(certificates) == 0 {
		util.ResponseFailed(ctx, http.StatusNotFound, "No certificates found for this batch", util.GenerateErrorMessages(errors.New(ErrBatchNotFound), "batchId"), nil)
		return
	}

	tempOutDir, err := os.MkdirTemp("", "certvault_batch_merge_*")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error creating temporary directory", util.GenerateErrorMessages(err), nil)
		return
	}
	defer os.RemoveAll(tempOutDir)

	pdfPaths := make([]string, len(certificates))
	for i, cert := range certificates {
		localPath := filepath.Join(tempOutDir, fmt.Sprintf("%d.pdf", i+1))
		if err := util.DownloadS3Object(ctx, cc.app.S3, cc.app.Config.App.CertificateBucket, cert.PdfPath, localPath); err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Error downloading certificate file", util.GenerateErrorMessages(err), nil)
			return
		}
		pdfPaths[i] = localPath
	}

	mergedPath := filepath.Join(tempOutDir, fmt.Sprintf("%s_merged.pdf", batchId))
	if err := certgen.MergePdfFiles(pdfPaths, mergedPath); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error merging certificate files", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.FileAttachment(mergedPath, fmt.Sprintf("certificates_%s.pdf", batchId))
}

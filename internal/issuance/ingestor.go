package issuance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/CertVault/internal/model"
	"github.com/SeakMengs/CertVault/internal/util"
	"github.com/SeakMengs/CertVault/pkg/certgen"
	"go.uber.org/zap"
)

// Column headers the uploaded sheet must carry, matched literally against
// the first row.
var RequiredColumns = []string{"Full Name", "Program", "Certificate", "CGPA"}

// Optional per-row column holding the recipient photo reference.
const ImageUrlColumn = "Image Url"

const batchIdLength = 21

type BatchIngestor struct {
	processor Processor
	logger    *zap.SugaredLogger
}

func NewBatchIngestor(processor Processor, logger *zap.SugaredLogger) *BatchIngestor {
	return &BatchIngestor{processor: processor, logger: logger}
}

type BatchResult struct {
	BatchID      string
	Certificates []*model.Certificate
}

func (br *BatchResult) Count() int {
	return len(br.Certificates)
}

// Ingest parses and validates the uploaded sheet, then processes its rows
// strictly in order. Validation problems fail the batch before any side
// effect. A row failure aborts the remaining rows; rows committed before it
// stay persisted, and the returned error says how many.
func (bi *BatchIngestor) Ingest(ctx context.Context, file []byte, filename, institutionName, logoUrl, actorID string) (*BatchResult, error) {
	rows, err := certgen.ParseSpreadsheet(file, filename)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("failed to parse spreadsheet: %v", err)}
	}

	if len(rows) == 0 {
		return nil, &ValidationError{Message: "spreadsheet has no data rows"}
	}

	if err := validateColumns(rows[0]); err != nil {
		return nil, err
	}

	batchId, err := util.GenerateNChar(batchIdLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch id: %w", err)
	}

	batch := BatchContext{
		BatchID:         batchId,
		InstitutionName: institutionName,
		LogoUrl:         logoUrl,
		IssueDate:       time.Now(),
		ActorID:         actorID,
	}

	bi.logger.Infof("Ingesting batch %s: %d row(s) for %q", batch.BatchID, len(rows), institutionName)

	result := &BatchResult{
		BatchID:      batch.BatchID,
		Certificates: make([]*model.Certificate, 0, len(rows)),
	}

	for i, raw := range rows {
		row := Row{
			Number:           i + 1,
			FullName:         strings.TrimSpace(raw["Full Name"]),
			Program:          strings.TrimSpace(raw["Program"]),
			CertificateTitle: strings.TrimSpace(raw["Certificate"]),
			Cgpa:             strings.TrimSpace(raw["CGPA"]),
			ImageUrl:         strings.TrimSpace(raw[ImageUrlColumn]),
		}

		cert, err := bi.processor.Process(ctx, row, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %s aborted at row %d, %d row(s) already committed: %w",
				batch.BatchID, row.Number, result.Count(), err)
		}

		result.Certificates = append(result.Certificates, cert)
	}

	return result, nil
}

func validateColumns(header map[string]string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Message: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", "))}
	}

	return nil
}

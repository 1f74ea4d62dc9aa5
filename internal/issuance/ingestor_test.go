package issuance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/SeakMengs/CertVault/internal/model"
	"go.uber.org/zap"
)

type fakeProcessor struct {
	rows    []Row
	batches []BatchContext
	failAt  int
}

func (fp *fakeProcessor) Process(_ context.Context, row Row, batch BatchContext) (*model.Certificate, error) {
	if fp.failAt != 0 && row.Number == fp.failAt {
		return nil, errors.New("boom")
	}

	fp.rows = append(fp.rows, row)
	fp.batches = append(fp.batches, batch)

	return &model.Certificate{
		BaseModel: model.BaseModel{ID: fmt.Sprintf("cert-%d", row.Number)},
		BatchID:   batch.BatchID,
		FullName:  row.FullName,
	}, nil
}

func sheetCSV(rows ...string) []byte {
	return []byte(strings.Join(rows, "\n"))
}

func TestIngestProcessesRowsInOrder(t *testing.T) {
	fp := &fakeProcessor{}
	bi := NewBatchIngestor(fp, zap.NewNop().Sugar())

	file := sheetCSV(
		"Full Name,Program,Certificate,CGPA,Image Url",
		"Sok Dara,Computer Science,Outstanding Graduate,3.92,http://assets.test/dara.png",
		"Chan Thida,Business,Valedictorian,4.00,",
	)

	result, err := bi.Ingest(context.Background(), file, "batch.csv", "Royal University", "http://assets.test/logo.png", "user-1")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if result.Count() != 2 {
		t.Fatalf("Expected 2 certificates, got %d", result.Count())
	}
	if result.BatchID == "" {
		t.Error("Expected a batch id to be assigned")
	}

	if fp.rows[0].FullName != "Sok Dara" || fp.rows[1].FullName != "Chan Thida" {
		t.Errorf("Rows processed out of order: %+v", fp.rows)
	}
	if fp.rows[0].Number != 1 || fp.rows[1].Number != 2 {
		t.Errorf("Unexpected row numbers: %d, %d", fp.rows[0].Number, fp.rows[1].Number)
	}
	if fp.rows[0].ImageUrl != "http://assets.test/dara.png" {
		t.Errorf("Unexpected image url: %q", fp.rows[0].ImageUrl)
	}

	for _, batch := range fp.batches {
		if batch.BatchID != result.BatchID {
			t.Errorf("Expected every row to share batch id %s, got %s", result.BatchID, batch.BatchID)
		}
		if batch.InstitutionName != "Royal University" {
			t.Errorf("Unexpected institution: %q", batch.InstitutionName)
		}
		if batch.ActorID != "user-1" {
			t.Errorf("Unexpected actor: %q", batch.ActorID)
		}
	}
}

func TestIngestRejectsMissingColumns(t *testing.T) {
	fp := &fakeProcessor{}
	bi := NewBatchIngestor(fp, zap.NewNop().Sugar())

	file := sheetCSV(
		"Full Name,Program,Certificate",
		"Sok Dara,Computer Science,Outstanding Graduate",
	)

	_, err := bi.Ingest(context.Background(), file, "batch.csv", "Royal University", "", "user-1")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, "CGPA") {
		t.Errorf("Expected the missing column to be named, got %q", ve.Message)
	}
	if len(fp.rows) != 0 {
		t.Errorf("Expected no row to be processed, got %d", len(fp.rows))
	}
}

func TestIngestRejectsEmptySheet(t *testing.T) {
	bi := NewBatchIngestor(&fakeProcessor{}, zap.NewNop().Sugar())

	_, err := bi.Ingest(context.Background(), sheetCSV("Full Name,Program,Certificate,CGPA"), "batch.csv", "Royal University", "", "user-1")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError for a header-only sheet, got %v", err)
	}
}

func TestIngestAbortsOnRowFailure(t *testing.T) {
	fp := &fakeProcessor{failAt: 2}
	bi := NewBatchIngestor(fp, zap.NewNop().Sugar())

	file := sheetCSV(
		"Full Name,Program,Certificate,CGPA",
		"Sok Dara,Computer Science,Outstanding Graduate,3.92",
		"Chan Thida,Business,Valedictorian,4.00",
		"Kim Sopheak,Engineering,Honors,3.50",
	)

	_, err := bi.Ingest(context.Background(), file, "batch.csv", "Royal University", "", "user-1")
	if err == nil {
		t.Fatal("Expected the batch to fail")
	}

	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected the failing row to be named, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "1 row(s) already committed") {
		t.Errorf("Expected the committed count to be reported, got %q", err.Error())
	}
	if len(fp.rows) != 1 {
		t.Errorf("Expected processing to stop after the failure, got %d processed rows", len(fp.rows))
	}
}

func TestVerifyURL(t *testing.T) {
	tests := []struct {
		base     string
		id       string
		expected string
	}{
		{"http://localhost:8080", "abc", "http://localhost:8080/verify/abc"},
		{"https://cert.example.com/", "abc", "https://cert.example.com/verify/abc"},
	}

	for _, tc := range tests {
		if got := VerifyURL(tc.base, tc.id); got != tc.expected {
			t.Errorf("VerifyURL(%q, %q) = %q, expected %q", tc.base, tc.id, got, tc.expected)
		}
	}
}

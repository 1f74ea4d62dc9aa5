package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
)

// The sendgrid client is not exercised here; this covers the embedded
// template so a malformed edit fails in CI instead of at send time.
func TestBatchSummaryTemplate(t *testing.T) {
	tmpl, err := template.ParseFS(FS, "templates/"+BATCH_SUMMARY_TEMPLATE)
	if err != nil {
		t.Fatalf("Failed to parse batch summary template: %v", err)
	}

	data := BatchSummaryData{
		Username:        "Dara",
		InstitutionName: "Royal University",
		Count:           12,
		BatchID:         "batch-1234",
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		t.Fatalf("Failed to execute subject template: %v", err)
	}
	if !strings.Contains(subject.String(), "12 certificates") {
		t.Errorf("Unexpected subject: %s", subject.String())
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		t.Fatalf("Failed to execute body template: %v", err)
	}
	for _, want := range []string{"Dara", "Royal University", "batch-1234"} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("Body missing %q:\n%s", want, body.String())
		}
	}
}

// Exhausted retries must surface the underlying send error, not a nil one.
func TestSendReportsErrorAfterRetries(t *testing.T) {
	m := NewSendgrid("unit-test-key", "noreply@certvault.test", false, nil)
	m.retryBackoff = 0
	// Point the client at a closed port so every attempt fails fast.
	m.client.Request.BaseURL = "http://127.0.0.1:1"

	code, err := m.Send(BATCH_SUMMARY_TEMPLATE, "Dara", "dara@certvault.test", BatchSummaryData{
		Username:        "Dara",
		InstitutionName: "Royal University",
		Count:           1,
		BatchID:         "batch-1234",
	})

	if err == nil {
		t.Fatal("Expected Send to fail when every attempt errors")
	}
	if code != -1 {
		t.Errorf("Expected status code -1, got %d", code)
	}
	if strings.Contains(err.Error(), "<nil>") {
		t.Errorf("Expected the underlying send error to be reported, got %q", err.Error())
	}
}

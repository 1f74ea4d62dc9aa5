package mailer

import "embed"

const (
	MAX_RETRY = 3

	BATCH_SUMMARY_TEMPLATE = "batch_summary.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any) (int, error)
}

// BatchSummaryData feeds the batch_summary template sent to the issuing
// staff member after a successful ingest.
type BatchSummaryData struct {
	Username        string
	InstitutionName string
	Count           int
	BatchID         string
}

package certgen

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRenderer(t *testing.T, cfg Config) *Renderer {
	t.Helper()

	if cfg.TmpDir == "" {
		cfg.TmpDir = t.TempDir()
	}
	if cfg.AssetFetchTimeout == 0 {
		cfg.AssetFetchTimeout = time.Second
	}

	r, err := NewRenderer(cfg)
	if err != nil {
		t.Skipf("No usable font available on this system: %v", err)
	}
	return r
}

func assertIsPDF(t *testing.T, data []byte) {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("Expected PDF output, got prefix %q", data[:min(len(data), 8)])
	}
}

func TestRenderWithoutAssets(t *testing.T) {
	r := newTestRenderer(t, Config{})

	data, err := r.Render(context.Background(), Fields{
		CertificateID:    "11111111-2222-3333-4444-555555555555",
		InstitutionName:  "Royal University",
		FullName:         "Sok Dara",
		Program:          "Computer Science",
		CertificateTitle: "Outstanding Graduate",
		CGPA:             "3.92",
		VerifyURL:        "http://localhost:8080/verify/11111111-2222-3333-4444-555555555555",
		IssueDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	assertIsPDF(t, data)
}

func TestRenderWithEmptyOptionalFields(t *testing.T) {
	r := newTestRenderer(t, Config{})

	// Only the name is set; every optional section must be skipped without
	// failing the render.
	data, err := r.Render(context.Background(), Fields{
		CertificateID: "id-1",
		FullName:      "Sok Dara",
		VerifyURL:     "http://localhost:8080/verify/id-1",
		IssueDate:     time.Now(),
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	assertIsPDF(t, data)
}

func TestRenderSurvivesUnreachableAssets(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	r := newTestRenderer(t, Config{AssetFetchTimeout: 150 * time.Millisecond})

	start := time.Now()
	data, err := r.Render(context.Background(), Fields{
		CertificateID: "id-2",
		FullName:      "Chan Thida",
		LogoURL:       server.URL + "/logo.png",
		ImageURL:      server.URL + "/photo.png",
		VerifyURL:     "http://localhost:8080/verify/id-2",
		IssueDate:     time.Now(),
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	assertIsPDF(t, data)

	// Both fetches run concurrently and are bounded by the timeout.
	if elapsed > 5*time.Second {
		t.Errorf("Render took %s, expected asset timeouts to bound it", elapsed)
	}
}

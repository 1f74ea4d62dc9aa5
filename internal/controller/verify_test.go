package controller

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderVerifyPageEscapesUserValues(t *testing.T) {
	page, err := renderVerifyPage(verifyPageData{
		StatusLabel:     "VALID",
		IsValid:         true,
		FullName:        `<script>alert("name")</script>`,
		InstitutionName: `Royal "University" & Co`,
		Program:         "Computer Science",
		IssueDate:       "June 1, 2025",
		CertificateID:   "abc-123",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(page)
	if strings.Contains(html, `<script>alert`) {
		t.Error("Expected the recipient name to be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("Expected the escaped name to appear in the page")
	}
	if !strings.Contains(html, "Royal &#34;University&#34; &amp; Co") {
		t.Error("Expected the institution name to be escaped")
	}
}

func TestRenderVerifyPageShowsRecordFields(t *testing.T) {
	page, err := renderVerifyPage(verifyPageData{
		StatusLabel:     "VALID",
		IsValid:         true,
		FullName:        "Sok Dara",
		InstitutionName: "Royal University",
		Program:         "Computer Science",
		Cgpa:            "3.92",
		IssueDate:       "June 1, 2025",
		CertificateID:   "11111111-2222-3333-4444-555555555555",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(page)
	for _, want := range []string{
		"Sok Dara",
		"Royal University",
		"Computer Science",
		"3.92",
		"June 1, 2025",
		"11111111-2222-3333-4444-555555555555",
		"VALID",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestRenderVerifyPageOmitsEmptySections(t *testing.T) {
	page, err := renderVerifyPage(verifyPageData{
		StatusLabel:   "VALID",
		IsValid:       true,
		FullName:      "Sok Dara",
		IssueDate:     "June 1, 2025",
		CertificateID: "abc-123",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(page)
	for _, label := range []string{"Program", "CGPA", "Download certificate"} {
		if strings.Contains(html, label) {
			t.Errorf("Expected %q to be omitted for empty data", label)
		}
	}
}

func TestRenderVerifyPageIsDeterministic(t *testing.T) {
	data := verifyPageData{
		StatusLabel:   "VALID",
		IsValid:       true,
		FullName:      "Sok Dara",
		Program:       "Computer Science",
		IssueDate:     "June 1, 2025",
		CertificateID: "abc-123",
	}

	first, err := renderVerifyPage(data)
	if err != nil {
		t.Fatal(err)
	}
	second, err := renderVerifyPage(data)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Expected rendering the same data twice to produce identical pages")
	}
}

func TestRenderVerifyNotFoundPageEscapesCode(t *testing.T) {
	page, err := renderVerifyNotFoundPage(verifyNotFoundData{
		CertificateID: `"><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := string(page)
	if strings.Contains(html, "<script>alert(1)") {
		t.Error("Expected the requested code to be escaped")
	}
}

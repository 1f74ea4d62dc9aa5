package controller

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/SeakMengs/CertVault/internal/constant"
	"github.com/SeakMengs/CertVault/pkg/certgen"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VerifyController struct {
	*baseController
}

// Data fields are inserted with html/template's contextual escaping, so
// recipient-controlled values (names, programs, the requested code) can never
// break out of the page.
const verifyFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Certificate Verification</title>
<style>
body { font-family: Georgia, serif; background: #f3f4f6; margin: 0; padding: 2rem; }
.card { max-width: 640px; margin: 0 auto; background: #fff; border: 1px solid #d1d5db; border-radius: 8px; padding: 2.5rem; }
.badge { display: inline-block; padding: 0.25rem 0.75rem; border-radius: 9999px; font-size: 0.85rem; font-weight: bold; }
.badge.valid { background: #dcfce7; color: #166534; }
.badge.revoked { background: #fee2e2; color: #991b1b; }
h1 { color: #1f2937; margin: 0 0 0.25rem; }
img.logo { display: block; height: 48px; margin-bottom: 1rem; }
h2 { color: #374151; font-weight: normal; margin: 0 0 1.5rem; }
dl { display: grid; grid-template-columns: auto 1fr; gap: 0.5rem 1.5rem; }
dt { color: #6b7280; }
dd { color: #1f2937; margin: 0; }
.qr { margin-top: 1.5rem; }
.qr svg { width: 120px; height: 120px; }
a.download { display: inline-block; margin-top: 1.5rem; color: #1d4ed8; }
code { background: #f3f4f6; padding: 0.1rem 0.3rem; border-radius: 4px; }
</style>
</head>
<body>
<div class="card">
{{if .LogoUrl}}<img class="logo" src="{{.LogoUrl}}" alt="">{{end}}
<span class="badge {{if .IsValid}}valid{{else}}revoked{{end}}">{{.StatusLabel}}</span>
<h1>{{.FullName}}</h1>
<h2>{{.InstitutionName}}</h2>
<dl>
{{if .Program}}<dt>Program</dt><dd>{{.Program}}</dd>{{end}}
{{if .CertificateTitle}}<dt>Certificate</dt><dd>{{.CertificateTitle}}</dd>{{end}}
{{if .Cgpa}}<dt>CGPA</dt><dd>{{.Cgpa}}</dd>{{end}}
<dt>Issued</dt><dd>{{.IssueDate}}</dd>
<dt>Certificate ID</dt><dd><code>{{.CertificateID}}</code></dd>
</dl>
{{if .QRCodeSVG}}<div class="qr">{{.QRCodeSVG}}</div>{{end}}
{{if .DownloadUrl}}<a class="download" href="{{.DownloadUrl}}">Download certificate (PDF)</a>{{end}}
</div>
</body>
</html>
`

const verifyNotFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Certificate Not Found</title>
<style>
body { font-family: Georgia, serif; background: #f3f4f6; margin: 0; padding: 2rem; }
.card { max-width: 640px; margin: 0 auto; background: #fff; border: 1px solid #d1d5db; border-radius: 8px; padding: 2.5rem; }
h1 { color: #991b1b; margin: 0 0 1rem; }
p { color: #374151; }
code { background: #f3f4f6; padding: 0.1rem 0.3rem; border-radius: 4px; }
</style>
</head>
<body>
<div class="card">
<h1>Certificate not found</h1>
<p>No certificate exists for code <code>{{.CertificateID}}</code>. Check the code and try again.</p>
</div>
</body>
</html>
`

var (
	verifyFoundTmpl    = template.Must(template.New("verify_found").Parse(verifyFoundPage))
	verifyNotFoundTmpl = template.Must(template.New("verify_not_found").Parse(verifyNotFoundPage))
)

type verifyPageData struct {
	StatusLabel      string
	IsValid          bool
	FullName         string
	InstitutionName  string
	// LogoUrl is only set for http(s) references; local asset paths used
	// during rendering are never exposed.
	LogoUrl          string
	Program          string
	CertificateTitle string
	Cgpa             string
	IssueDate        string
	CertificateID    string
	// QRCodeSVG is generated by the service, never from request input.
	QRCodeSVG   template.HTML
	DownloadUrl string
}

type verifyNotFoundData struct {
	CertificateID string
}

func renderVerifyPage(data verifyPageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := verifyFoundTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderVerifyNotFoundPage(data verifyNotFoundData) ([]byte, error) {
	var buf bytes.Buffer
	if err := verifyNotFoundTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VerifyCertificate serves the public verification page. It is unauthenticated
// and returns HTML rather than the API's JSON envelope.
func (vc VerifyController) VerifyCertificate(ctx *gin.Context) {
	certificateId := ctx.Params.ByName("certificateId")

	cert, err := vc.app.Repository.Certificate.GetById(ctx, nil, certificateId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			page, renderErr := renderVerifyNotFoundPage(verifyNotFoundData{CertificateID: certificateId})
			if renderErr != nil {
				ctx.String(http.StatusInternalServerError, "Failed to render page")
				return
			}

			ctx.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
			return
		}

		vc.app.Logger.Errorf("Failed to look up certificate %q: %v", certificateId, err)
		ctx.String(http.StatusInternalServerError, "Failed to look up certificate")
		return
	}

	qrSvg, err := certgen.GenerateQRCodeSVG(cert.VerifyUrl)
	if err != nil {
		// The page still works without the code.
		vc.app.Logger.Errorf("Failed to generate QR code for certificate %s: %v", cert.ID, err)
		qrSvg = ""
	}

	downloadUrl := ""
	if cert.Status == constant.CertificateStatusValid {
		downloadUrl, err = cert.DownloadUrl(ctx, vc.app.S3, vc.app.Config.App.CertificateBucket, vc.app.Config.App.PresignExpiry)
		if err != nil {
			vc.app.Logger.Errorf("Failed to resolve download url for certificate %s: %v", cert.ID, err)
			downloadUrl = ""
		}
	}

	logoUrl := ""
	if strings.HasPrefix(cert.LogoUrl, "http://") || strings.HasPrefix(cert.LogoUrl, "https://") {
		logoUrl = cert.LogoUrl
	}

	page, err := renderVerifyPage(verifyPageData{
		StatusLabel:      strings.ToUpper(string(cert.Status)),
		IsValid:          cert.Status == constant.CertificateStatusValid,
		FullName:         cert.FullName,
		InstitutionName:  cert.InstitutionName,
		LogoUrl:          logoUrl,
		Program:          cert.Program,
		CertificateTitle: cert.CertificateTitle,
		Cgpa:             cert.Cgpa,
		IssueDate:        cert.CreatedAt.Format("January 2, 2006"),
		CertificateID:    cert.ID,
		QRCodeSVG:        template.HTML(qrSvg),
		DownloadUrl:      downloadUrl,
	})
	if err != nil {
		vc.app.Logger.Errorf("Failed to render verify page for certificate %s: %v", cert.ID, err)
		ctx.String(http.StatusInternalServerError, "Failed to render page")
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

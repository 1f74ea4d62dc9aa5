package certgen

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"sync"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement. The page is
 * landscape A4; the coordinate system is flipped so y grows downward from
 * the top edge.
 */

const (
	pageWidthMM  = 297.0
	pageHeightMM = 210.0

	logoHeightMM     = 26.0
	photoDiameterMM  = 32.0
	marginMM         = 16.0
	signatureWidthMM = 60.0

	// Pixel heights that the fetched raster assets are normalized to before
	// being placed on the page.
	logoHeightPx  = 300
	photoHeightPx = 400
)

const (
	headingColor = "#1f2937"
	bodyColor    = "#374151"
	mutedColor   = "#6b7280"
)

// Fields is the per-certificate payload assembled by the row processor.
// Values are opaque text; the renderer never interprets them as markup.
type Fields struct {
	CertificateID    string
	InstitutionName  string
	FullName         string
	Program          string
	CertificateTitle string
	CGPA             string
	LogoURL          string
	ImageURL         string
	VerifyURL        string
	IssueDate        time.Time
}

type Renderer struct {
	cfg     Config
	regular *canvas.FontFamily
	bold    *canvas.FontFamily
}

func NewRenderer(cfg Config) (*Renderer, error) {
	fontLoader := NewFontLoader(cfg.FontDir)

	regular, err := fontLoader.Load(FontWeightRegular)
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}

	bold, err := fontLoader.Load(FontWeightBold)
	if err != nil {
		// A dedicated bold face is optional
		bold = regular
	}

	return &Renderer{cfg: cfg, regular: regular, bold: bold}, nil
}

type fetchedAssets struct {
	logo  image.Image
	photo image.Image
}

// fetchAssets resolves the logo and recipient photo concurrently. Either may
// come back nil; the corresponding section is simply omitted.
func (r *Renderer) fetchAssets(ctx context.Context, f Fields) fetchedAssets {
	var assets fetchedAssets
	var wg sync.WaitGroup

	fetchInto := func(reference string, heightPx uint, dst *image.Image) {
		defer wg.Done()

		data, ok := FetchAsset(ctx, reference, r.cfg.AssetFetchTimeout)
		if !ok {
			return
		}

		img, err := DecodeImage(data)
		if err != nil {
			log.Printf("Skipping undecodable asset %q: %v", reference, err)
			return
		}

		resized, err := ResizeToHeight(img, heightPx)
		if err != nil {
			log.Printf("Skipping unresizable asset %q: %v", reference, err)
			return
		}

		*dst = resized
	}

	wg.Add(2)
	go fetchInto(f.LogoURL, logoHeightPx, &assets.logo)
	go fetchInto(f.ImageURL, photoHeightPx, &assets.photo)
	wg.Wait()

	return assets
}

// Render composes the fixed certificate layout into PDF bytes. Asset
// failures degrade the document; only output encoding failures return an
// error.
func (r *Renderer) Render(ctx context.Context, f Fields) ([]byte, error) {
	assets := r.fetchAssets(ctx, f)

	c := canvas.New(pageWidthMM, pageHeightMM)
	cc := canvas.NewContext(c)
	// Change coordination from bottom-left to top-left
	cc.SetCoordSystem(canvas.CartesianIV)

	cc.SetFillColor(canvas.White)
	cc.DrawPath(0, 0, canvas.Rectangle(pageWidthMM, pageHeightMM))
	cc.Fill()

	y := marginMM

	if assets.logo != nil {
		y += r.drawImageCentered(cc, assets.logo, y, logoHeightMM) + 6
	}

	institution := f.InstitutionName
	if institution == "" {
		institution = "Institution"
	}
	y += r.drawCenteredLine(cc, r.bold, 26, headingColor, canvas.FontBold, institution, y) + 4

	y += r.drawCenteredLine(cc, r.regular, 16, mutedColor, canvas.FontRegular, "Certificate of Completion", y) + 6

	if assets.photo != nil {
		y += r.drawImageCentered(cc, CircularCrop(assets.photo), y, photoDiameterMM) + 6
	}

	fullName := f.FullName
	if fullName == "" {
		fullName = "Recipient"
	}
	y += r.drawCenteredLine(cc, r.bold, 22, headingColor, canvas.FontBold, fullName, y) + 3

	if f.Program != "" {
		y += r.drawCenteredLine(cc, r.regular, 13, bodyColor, canvas.FontRegular, f.Program, y) + 2
	}
	if f.CertificateTitle != "" {
		y += r.drawCenteredLine(cc, r.regular, 13, bodyColor, canvas.FontRegular, f.CertificateTitle, y) + 2
	}
	if f.CGPA != "" {
		r.drawCenteredLine(cc, r.regular, 13, bodyColor, canvas.FontRegular, "CGPA: "+f.CGPA, y)
	}

	r.drawFooter(cc, f)
	r.drawSignatureLines(cc)

	data, err := r.encode(c, f.VerifyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to encode certificate: %w", err)
	}

	return data, nil
}

// drawCenteredLine draws one line of text horizontally centered at the given
// top offset and returns the vertical space it consumed in mm.
func (r *Renderer) drawCenteredLine(cc *canvas.Context, family *canvas.FontFamily, size float64, hexColor string, style canvas.FontStyle, text string, y float64) float64 {
	face := family.Face(size, canvas.Hex(hexColor), style, canvas.FontNormal)
	line := canvas.NewTextLine(face, text, canvas.Center)

	heightMM := line.Bounds().H()
	// DrawText places the text baseline; offset by the line height so y is
	// the top of the line.
	cc.DrawText(pageWidthMM/2, y+heightMM, line)

	return heightMM
}

// drawImageCentered draws the image horizontally centered with the given
// height in mm and returns that height.
func (r *Renderer) drawImageCentered(cc *canvas.Context, img image.Image, y, heightMM float64) float64 {
	bounds := img.Bounds()
	resolution := canvas.DPMM(float64(bounds.Dy()) / heightMM)
	widthMM := float64(bounds.Dx()) / float64(resolution)

	cc.DrawImage((pageWidthMM-widthMM)/2, y, img, resolution)

	return heightMM
}

func (r *Renderer) drawFooter(cc *canvas.Context, f Fields) {
	dateFace := r.regular.Face(10, canvas.Hex(mutedColor), canvas.FontRegular, canvas.FontNormal)

	issuedOn := "Issued on " + f.IssueDate.Format("January 2, 2006")
	cc.DrawText(marginMM, pageHeightMM-marginMM-5, canvas.NewTextLine(dateFace, issuedOn, canvas.Left))

	certId := "Certificate ID: " + f.CertificateID
	cc.DrawText(marginMM, pageHeightMM-marginMM, canvas.NewTextLine(dateFace, certId, canvas.Left))
}

func (r *Renderer) drawSignatureLines(cc *canvas.Context) {
	labelFace := r.regular.Face(11, canvas.Hex(bodyColor), canvas.FontRegular, canvas.FontNormal)
	lineY := pageHeightMM - 40.0

	for _, sig := range []struct {
		label   string
		centerX float64
	}{
		{"Dean", pageWidthMM * 0.3},
		{"Registrar", pageWidthMM * 0.7},
	} {
		cc.SetStrokeColor(canvas.Hex(bodyColor))
		cc.SetStrokeWidth(0.4)
		cc.MoveTo(sig.centerX-signatureWidthMM/2, lineY)
		cc.LineTo(sig.centerX+signatureWidthMM/2, lineY)
		cc.Stroke()

		cc.DrawText(sig.centerX, lineY+6, canvas.NewTextLine(labelFace, sig.label, canvas.Center))
	}
}

// encode writes the canvas to PDF and stamps the verification QR code in the
// bottom-right corner. Intermediate files live in the configured tmp dir.
func (r *Renderer) encode(c *canvas.Canvas, verifyURL string) ([]byte, error) {
	if err := os.MkdirAll(r.cfg.TmpDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tmp directory: %w", err)
	}

	pdfFile, err := os.CreateTemp(r.cfg.TmpDir, "certvault_*.pdf")
	if err != nil {
		return nil, err
	}
	pdfFile.Close()
	defer os.Remove(pdfFile.Name())

	if err := renderers.Write(pdfFile.Name(), c); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	if verifyURL != "" {
		if err := r.stampQRCode(pdfFile.Name(), verifyURL); err != nil {
			return nil, err
		}
	}

	return os.ReadFile(pdfFile.Name())
}

func (r *Renderer) stampQRCode(pdfPath, verifyURL string) error {
	qrData, err := GenerateQRCodePNG(verifyURL, 50)
	if err != nil {
		return err
	}

	qrFile, err := os.CreateTemp(r.cfg.TmpDir, "certvault_qr_*.png")
	if err != nil {
		return err
	}
	defer os.Remove(qrFile.Name())

	if _, err := qrFile.Write(qrData); err != nil {
		qrFile.Close()
		return err
	}
	qrFile.Close()

	return EmbedQRCodeToPdf(pdfPath, pdfPath, qrFile.Name(), []string{})
}

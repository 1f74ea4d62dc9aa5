package certgen

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/sfnt"
)

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

// Get font weight of canvas type
func (w FontWeight) GetFontStyle() canvas.FontStyle {
	switch w {
	case FontWeightBold:
		return canvas.FontBold
	default:
		return canvas.FontRegular
	}
}

type FontMetadata struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	return &FontMetadata{
		Name: name,
		Path: fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

type FontLoader struct {
	// Directory of font files; system fonts are used when empty.
	Dir string
}

func NewFontLoader(dir string) *FontLoader {
	return &FontLoader{Dir: dir}
}

// Load returns a font family for the given weight. With a font directory
// configured it prefers a file whose name matches the weight; otherwise it
// falls back to the system sans-serif family.
func (fl *FontLoader) Load(weight FontWeight) (*canvas.FontFamily, error) {
	if fl.Dir == "" {
		fontFamily := canvas.NewFontFamily("sans-serif")
		if err := fontFamily.LoadSystemFont("sans-serif", weight.GetFontStyle()); err != nil {
			return nil, fmt.Errorf("failed to load system font: %w", err)
		}
		return fontFamily, nil
	}

	fonts, err := ScanFontDir(fl.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan font directory: %w", err)
	}
	if len(fonts) == 0 {
		return nil, fmt.Errorf("no usable fonts in %q", fl.Dir)
	}

	meta := fonts[0]
	for _, f := range fonts {
		if strings.Contains(strings.ToLower(filepath.Base(f.Path)), string(weight)) {
			meta = f
			break
		}
	}

	fontFamily := canvas.NewFontFamily(meta.Name)
	if err := fontFamily.LoadFontFile(meta.Path, weight.GetFontStyle()); err != nil {
		return nil, fmt.Errorf("failed to load font file: %w", err)
	}

	return fontFamily, nil
}

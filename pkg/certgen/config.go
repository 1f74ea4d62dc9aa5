package certgen

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Directory scanned for .ttf/.otf font files. System fonts are used
	// when empty.
	FontDir string
	// Directory where intermediate files are stored during rendering, the
	// files are deleted after processing
	TmpDir string
	// Upper bound for fetching a remote logo or recipient photo.
	AssetFetchTimeout time.Duration
}

func NewDefaultConfig() *Config {
	cfg := Config{
		FontDir:           "",
		TmpDir:            fmt.Sprintf("%s/certvault/render/tmp", os.TempDir()),
		AssetFetchTimeout: 8 * time.Second,
	}

	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
	}

	return &cfg
}

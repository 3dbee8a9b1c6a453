package docgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SealFetcher resolves a company's seal image reference to raw bytes and an
// image format ("png" or "jpeg").
type SealFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, string, error)
}

// SealSource fetches seal images from http(s) URLs or from paths relative to
// a base directory. Fetches are bounded by the client timeout so a slow image
// host can never stall document assembly.
type SealSource struct {
	client  *http.Client
	baseDir string
}

const maxSealBytes = 5 << 20

func NewSealSource(baseDir string, timeout time.Duration) *SealSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SealSource{
		client:  &http.Client{Timeout: timeout},
		baseDir: baseDir,
	}
}

func (s *SealSource) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	var data []byte
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, "", fmt.Errorf("docgen: build seal request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("docgen: fetch seal: %w", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode >= 400 {
			return nil, "", fmt.Errorf("docgen: fetch seal: status %d", resp.StatusCode)
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, maxSealBytes))
		if err != nil {
			return nil, "", fmt.Errorf("docgen: read seal: %w", err)
		}
	} else {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.baseDir, filepath.Clean("/"+ref))
		}
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("docgen: read seal file: %w", err)
		}
	}

	format, err := sniffImageFormat(data)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

func sniffImageFormat(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return "png", nil
	case bytes.HasPrefix(data, jpegMagic):
		return "jpeg", nil
	default:
		return "", fmt.Errorf("docgen: unsupported seal image format")
	}
}

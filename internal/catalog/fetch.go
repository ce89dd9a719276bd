package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source supplies the raw catalog data.
type Source interface {
	// Fetch returns the catalog body. Errors are terminal for the attempt;
	// callers treat a failed fetch as "no candidate".
	Fetch(ctx context.Context) ([]byte, error)

	// Ref describes the source for logging.
	Ref() string
}

// NewSource builds a Source from a config reference: http(s) URLs fetch over
// the network, everything else is read as a local file path.
func NewSource(ref string) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &HTTPSource{
			url: ref,
			client: &http.Client{
				Timeout: 30 * time.Second,
			},
		}
	}
	return &FileSource{path: ref}
}

// FileSource reads the catalog from a local file.
type FileSource struct {
	path string
}

// Fetch reads the catalog file.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return body, nil
}

// Ref returns the file path.
func (s *FileSource) Ref() string {
	return s.path
}

// HTTPSource downloads the catalog from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// Fetch downloads the catalog body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}

	return body, nil
}

// Ref returns the URL.
func (s *HTTPSource) Ref() string {
	return s.url
}

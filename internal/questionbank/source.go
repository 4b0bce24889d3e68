package questionbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Source abstracts where the catalog document comes from: a bundled
// byte slice, a file on disk, or an HTTP endpoint.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// BytesSource serves an in-memory document, used for the embedded
// default catalog and in tests.
type BytesSource []byte

func (s BytesSource) Fetch(context.Context) ([]byte, error) {
	return []byte(s), nil
}

// FileSource reads the catalog from a local path.
type FileSource string

func (s FileSource) Fetch(context.Context) ([]byte, error) {
	data, err := os.ReadFile(string(s))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", string(s), err)
	}
	return data, nil
}

// HTTPSource fetches the catalog with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", s.URL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// SourceFor picks a Source for a location string: http(s) URLs fetch
// over the network, anything else is a file path, and the empty string
// falls back to the embedded default catalog.
func SourceFor(location string) Source {
	switch {
	case location == "":
		return DefaultSource()
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location}
	default:
		return FileSource(location)
	}
}

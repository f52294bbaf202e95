package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/adei/pkg/index"
	"gopkg.in/yaml.v3"
)

// DataFile is the interchange document name written by every import run.
const DataFile = "oic_digital_economy_index.json"

// Manifest describes one completed import run.
type Manifest struct {
	Adapter   string `yaml:"adapter"`
	Source    string `yaml:"source"`
	Generated string `yaml:"generated"`
	Countries int    `yaml:"countries"`
	DataFile  string `yaml:"data_file"`
}

// Run ingests source through the adapter and writes the interchange JSON and
// manifest into outputDir. It returns the number of countries written.
func Run(ctx context.Context, a Adapter, source, outputDir string) (int, error) {
	countries, err := a.Ingest(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a.ID(), err)
	}
	if len(countries) == 0 {
		return 0, fmt.Errorf("%s: no countries ingested from %s", a.ID(), source)
	}

	if err := ensureDir(outputDir); err != nil {
		return 0, err
	}
	if err := WriteDocument(filepath.Join(outputDir, DataFile), countries); err != nil {
		return 0, err
	}
	if err := writeManifest(outputDir, &Manifest{
		Adapter:   a.ID(),
		Source:    source,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Countries: len(countries),
		DataFile:  DataFile,
	}); err != nil {
		return 0, err
	}
	return len(countries), nil
}

// WriteDocument serializes the interchange document to path.
func WriteDocument(path string, countries []index.Country) error {
	data, err := json.MarshalIndent(countries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal interchange document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadDocument parses an interchange document from path.
func ReadDocument(path string) ([]index.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var countries []index.Country
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return countries, nil
}

// fetch resolves a source to a local file. Local paths pass through; http(s)
// URLs are downloaded to dir with retries. The returned path lives under dir
// only in the download case.
func fetch(ctx context.Context, source, dir string) (string, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return source, nil
	}
	dest := filepath.Join(dir, filepath.Base(source))
	if err := downloadFile(ctx, source, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

func writeManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/keepers/internal/extract"
	"github.com/lepinkainen/keepers/internal/fees"
	"gopkg.in/yaml.v3"
)

// PageSkips lists what one scraped page did not turn into records.
type PageSkips struct {
	Source  string         `yaml:"source"`
	URL     string         `yaml:"url,omitempty"`
	Rows    int            `yaml:"rows"`
	Records int            `yaml:"records"`
	Dropped int            `yaml:"dropped"`
	Skipped []extract.Skip `yaml:"skipped,omitempty"`
}

// SkipReport collects skipped rows and name near-misses of one run.
type SkipReport struct {
	Run         string          `yaml:"run"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Pages       []PageSkips     `yaml:"pages,omitempty"`
	NearMisses  []fees.NearMiss `yaml:"near_misses,omitempty"`
}

// AddPage records the outcome of extracting one page or paginated scrape.
func (r *SkipReport) AddPage(source, url string, res extract.Result) {
	r.Pages = append(r.Pages, PageSkips{
		Source:  source,
		URL:     url,
		Rows:    res.Rows,
		Records: len(res.Records),
		Dropped: res.Dropped,
		Skipped: res.Skipped,
	})
}

// SkippedRows is the total number of skipped rows over all pages.
func (r *SkipReport) SkippedRows() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Skipped)
	}
	return n
}

// Write stores the report as YAML at path, replacing any previous report.
func (r *SkipReport) Write(path string) error {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode skip report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write skip report: %w", err)
	}
	return nil
}

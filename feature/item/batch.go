package item

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"trolley/core/reconcile"
	"trolley/core/storage"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Batch document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatOf guesses the document format from a file name or content type.
// Unknown names yield "" so the content is sniffed instead.
func FormatOf(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.Contains(lower, "json"):
		return FormatJSON
	case strings.Contains(lower, "yaml"):
		return FormatYAML
	default:
		return ""
	}
}

// DecodeBatch parses a JSON or YAML batch document. An empty format sniffs
// the content: documents starting with '{' are JSON.
func DecodeBatch(data []byte, format string) (Batch, error) {
	var batch Batch

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return batch, nil
	}
	if format == "" {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return batch, fmt.Errorf("failed to parse JSON batch: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &batch); err != nil {
			return batch, fmt.Errorf("failed to parse YAML batch: %w", err)
		}
	default:
		return batch, fmt.Errorf("unsupported batch format %q", format)
	}
	return batch, nil
}

// LoadBatchFile reads a batch document from the local filesystem.
func LoadBatchFile(name string) (Batch, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to read batch %s: %w", name, err)
	}
	return DecodeBatch(data, FormatOf(name))
}

// LoadBatchObject reads a batch document from object storage.
func LoadBatchObject(ctx context.Context, client storage.Client, bucket, name string) (Batch, error) {
	data, err := storage.ReadObject(ctx, client, bucket, name)
	if err != nil {
		return Batch{}, err
	}
	return DecodeBatch(data, FormatOf(name))
}

// Report describes the outcome of one reconcile pass.
type Report struct {
	ID          string            `json:"id"`
	Source      string            `json:"source,omitempty"`
	DryRun      bool              `json:"dry_run"`
	GeneratedAt string            `json:"generated_at"`
	Duration    string            `json:"duration"`
	Summary     reconcile.Summary `json:"summary"`
	Warnings    []string          `json:"warnings"`
	Items       []View            `json:"items"`
	Recomputing []string          `json:"recomputing"`
	Error       string            `json:"error,omitempty"`
	Object      string            `json:"object,omitempty"`
}

// SaveReport writes report as JSON under prefix and returns the object name.
func SaveReport(ctx context.Context, client storage.Client, bucket, prefix string, report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	name := path.Join(prefix, fmt.Sprintf("%s-%s.json", time.Now().UTC().Format("20060102T150405Z"), report.ID))
	if err := storage.WriteObject(ctx, client, bucket, name, "application/json", data); err != nil {
		return "", err
	}
	return name, nil
}

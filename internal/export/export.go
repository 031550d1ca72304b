// Package export converts the tracker state to and from portable YAML or JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/models"
)

const FormatVersion = 1

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml or json.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use yaml or json)", value)
	}
}

// FormatForPath guesses the format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk export layout.
type Document struct {
	Version    int                    `json:"version" yaml:"version"`
	App        string                 `json:"app" yaml:"app"`
	ExportedAt time.Time              `json:"exported_at" yaml:"exported_at"`
	Settings   *models.Settings       `json:"settings,omitempty" yaml:"settings,omitempty"`
	Tasks      []models.Task          `json:"tasks" yaml:"tasks"`
	History    []models.HistoryMarker `json:"history" yaml:"history"`
}

func NewDocument(now time.Time, settings *models.Settings, tasks []models.Task, history []models.HistoryMarker) Document {
	if tasks == nil {
		tasks = []models.Task{}
	}
	if history == nil {
		history = []models.HistoryMarker{}
	}
	return Document{
		Version:    FormatVersion,
		App:        constants.AppName,
		ExportedAt: now,
		Settings:   settings,
		Tasks:      tasks,
		History:    history,
	}
}

func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func Read(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse %s export: %w", format, err)
	}
	if doc.Version == 0 {
		return Document{}, fmt.Errorf("missing export version")
	}
	if doc.Version > FormatVersion {
		return Document{}, fmt.Errorf("export version %d is newer than supported version %d", doc.Version, FormatVersion)
	}
	return doc, nil
}

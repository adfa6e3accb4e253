package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxLineSize bounds a single line of a plain-text collection.
const maxLineSize = 1 << 20

// File reads a collection from disk. The format follows the extension:
// .json and .yaml/.yml hold a list, anything else is one item per line.
type File struct {
	Path string
}

// Compile-time check that File implements Source.
var _ Source = (*File)(nil)

// NewFile returns a File source for path.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return &File{Path: abs}, nil
}

func (f *File) Describe() string { return filepath.Base(f.Path) }

func (f *File) WatchTargets() []string { return []string{f.Path} }

// Load reads and parses the file.
func (f *File) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", f.Path, err)
	}
	items, err := Parse(data, Format(f.Path))
	if err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", f.Path, err)
	}
	return items, nil
}

// Format names the parser used for path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "lines"
	}
}

// Parse decodes data in the given format ("json", "yaml" or "lines").
func Parse(data []byte, format string) ([]Item, error) {
	switch format {
	case "json":
		var items []Item
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	case "yaml":
		var items []Item
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	case "lines":
		return parseLines(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func parseLines(data []byte) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		items = append(items, Item{Title: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

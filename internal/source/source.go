// Package source loads the collection a scroller windows over. The engine
// itself is handed a plain slice; this package is where that slice comes
// from.
package source

import (
	"context"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one entry of a collection. Files may give either a bare string
// (taken as the title) or an object.
type Item struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Source produces a collection and names the paths whose changes should
// trigger a reload.
type Source interface {
	Load(ctx context.Context) ([]Item, error)
	// Describe is a short label for the status bar.
	Describe() string
	// WatchTargets lists the files or directories to watch. Empty disables
	// watching.
	WatchTargets() []string
}

type itemFields Item

// UnmarshalJSON accepts a string or an object.
func (it *Item) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return err
		}
		*it = Item{Title: title}
		return nil
	}
	var f itemFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*it = Item(f)
	return nil
}

// UnmarshalYAML accepts a scalar or a mapping.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*it = Item{Title: value.Value}
		return nil
	}
	var f itemFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	*it = Item(f)
	return nil
}

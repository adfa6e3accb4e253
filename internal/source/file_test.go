package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "json", Format("a/b/items.JSON"))
	assert.Equal(t, "yaml", Format("items.yml"))
	assert.Equal(t, "yaml", Format("items.yaml"))
	assert.Equal(t, "lines", Format("items.txt"))
	assert.Equal(t, "lines", Format("README"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		want   []Item
	}{
		{
			name:   "json mixed strings and objects",
			format: "json",
			input:  `["alpha", {"id": "b", "title": "beta", "tags": ["x"]}]`,
			want: []Item{
				{Title: "alpha"},
				{ID: "b", Title: "beta", Tags: []string{"x"}},
			},
		},
		{
			name:   "json empty input",
			format: "json",
			input:  "  \n",
			want:   nil,
		},
		{
			name:   "yaml mixed scalars and mappings",
			format: "yaml",
			input:  "- alpha\n- id: b\n  title: beta\n  subtitle: second\n",
			want: []Item{
				{Title: "alpha"},
				{ID: "b", Title: "beta", Subtitle: "second"},
			},
		},
		{
			name:   "lines skip blanks",
			format: "lines",
			input:  "one\n\n  two  \nthree",
			want:   []Item{{Title: "one"}, {Title: "two"}, {Title: "three"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"not": "a list"}`), "json")
	assert.Error(t, err)

	_, err = Parse([]byte("x"), "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- one\n- two\n"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, "items.yaml", f.Describe())
	assert.Equal(t, []string{path}, f.WatchTargets())

	items, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Item{{Title: "one"}, {Title: "two"}}, items)
}

func TestFileLoadMissing(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	_, err = f.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

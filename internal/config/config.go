// Package config holds the runtime configuration for an analysis run.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hack-pad/hackpadfs"

	"github.com/inajob/inajob-podcast-research/pkg/filter"
)

// Config controls corpus locations and filtering thresholds. Zero values
// are replaced by defaults during Load.
type Config struct {
	TranscriptsDir string `json:"transcripts_dir"`
	KeywordsFile   string `json:"keywords_file"`
	OutputDir      string `json:"output_dir"`
	CachePath      string `json:"cache_path"`

	Workers   int `json:"workers"`
	BatchSize int `json:"batch_size"`

	MinDocs        int     `json:"min_docs"`
	MaxDocShare    float64 `json:"max_doc_share"`
	DominanceShare float64 `json:"dominance_share"`
	MaxShortRunes  int     `json:"max_short_runes"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TranscriptsDir: "transcripts",
		KeywordsFile:   "keywords.json",
		OutputDir:      "public",
		CachePath:      "tokens.db",
		BatchSize:      500,
		MinDocs:        2,
		MaxDocShare:    0.8,
		DominanceShare: 0.05,
		MaxShortRunes:  2,
	}
}

// FilterConfig converts the configured thresholds into the filter
// package's config.
func (c Config) FilterConfig() filter.Config {
	return filter.Config{
		MinDocs:        c.MinDocs,
		MaxDocShare:    c.MaxDocShare,
		DominanceShare: c.DominanceShare,
		MaxShortRunes:  c.MaxShortRunes,
	}
}

// Load reads a JSON config file. A missing file yields the defaults;
// a malformed file is an error.
func Load(fsys hackpadfs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", name, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", name, err)
	}
	return cfg, nil
}

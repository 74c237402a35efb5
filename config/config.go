package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/miosa/osa-vscroll/source"
	"github.com/miosa/osa-vscroll/vscroll"
)

// Config holds persistent settings stored at <profileDir>/vscroll.json.
type Config struct {
	Theme           string `json:"theme,omitempty"` // empty: follow the terminal background
	Source          string `json:"source,omitempty"`
	Count           int    `json:"count,omitempty"`
	Repo            string `json:"repo,omitempty"`
	PadAbove        int    `json:"pad_above"`
	PadBelow        int    `json:"pad_below"`
	ChangeDetection string `json:"change_detection,omitempty"`
	EvictAfter      int    `json:"evict_after,omitempty"`
	Smooth          bool   `json:"smooth"`
}

const filename = "vscroll.json"

// Load reads <profileDir>/vscroll.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/vscroll.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Source:          source.NameLorem,
		Count:           source.DefaultCount,
		PadAbove:        3,
		PadBelow:        3,
		ChangeDetection: vscroll.ByLength.String(),
		Smooth:          true,
	}
}

// StrategyOptions converts the strategy-related fields to vscroll options.
func (c Config) StrategyOptions() []vscroll.Option {
	opts := []vscroll.Option{
		vscroll.WithPadding(c.PadAbove, c.PadBelow),
		vscroll.WithChangeDetection(vscroll.ParseChangeDetection(c.ChangeDetection)),
	}
	if c.EvictAfter > 0 {
		opts = append(opts, vscroll.WithEviction(c.EvictAfter))
	}
	return opts
}

// SourceSpec returns the row source the config selects.
func (c Config) SourceSpec() source.Spec {
	return source.Spec{Name: c.Source, Count: c.Count, Repo: c.Repo}
}

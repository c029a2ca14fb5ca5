package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/g2mt/zig/internal/value"
)

// limitsFile is the optional TOML config selecting render bounds.
//
//	[render]
//	depth = 3
//	max-items = 100
//	max-string-len = 256
type limitsFile struct {
	Render struct {
		Depth        *int `toml:"depth"`
		MaxItems     *int `toml:"max-items"`
		MaxStringLen *int `toml:"max-string-len"`
	} `toml:"render"`
}

// loadLimits applies the config file on top of the given defaults. Only keys
// present in the file override.
func loadLimits(path string, depth int, limits value.RenderLimits) (int, value.RenderLimits, error) {
	var cfg limitsFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return 0, value.RenderLimits{}, fmt.Errorf("limits file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return 0, value.RenderLimits{}, fmt.Errorf("limits file %s: unknown key %s", path, undecoded[0])
	}
	if cfg.Render.Depth != nil {
		depth = *cfg.Render.Depth
	}
	if cfg.Render.MaxItems != nil {
		limits.MaxAggregateItems = *cfg.Render.MaxItems
	}
	if cfg.Render.MaxStringLen != nil {
		limits.MaxStringLen = *cfg.Render.MaxStringLen
	}
	return depth, limits, nil
}

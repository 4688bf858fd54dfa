package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/handiism/maplebgm-data/internal/extract"
	"github.com/handiism/maplebgm-data/internal/fanout"
	"github.com/handiism/maplebgm-data/internal/feed"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "maplebgm.toml"

// Paths locates the archive dump and the output.
type Paths struct {
	WZ         string `toml:"wz"`
	Dist       string `toml:"dist"`
	OutputFile string `toml:"output_file"`
}

// Feeds locates the remote feeds.
type Feeds struct {
	BuildURL       string `toml:"build_url"`
	CatalogURL     string `toml:"catalog_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Archive names the entries read from the archive dump.
type Archive struct {
	StringArchive string `toml:"string_archive"`
	MapNameImage  string `toml:"map_name_image"`
	MapArchive    string `toml:"map_archive"`
	MapDir        string `toml:"map_dir"`
	MapDirPrefix  string `toml:"map_dir_prefix"`
	ImageSuffix   string `toml:"image_suffix"`
	InfoNode      string `toml:"info_node"`
	BgmNode       string `toml:"bgm_node"`
}

// Fanout bounds the concurrency of each traversal level. 0 is unbounded.
type Fanout struct {
	LocationRegions int `toml:"location_regions"`
	LocationMaps    int `toml:"location_maps"`
	AssignmentDirs  int `toml:"assignment_dirs"`
	AssignmentFiles int `toml:"assignment_files"`
}

// Log configures log output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Settings holds all configuration options.
type Settings struct {
	Paths   Paths   `toml:"paths"`
	Feeds   Feeds   `toml:"feeds"`
	Archive Archive `toml:"archive"`
	Fanout  Fanout  `toml:"fanout"`
	Log     Log     `toml:"log"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	loc := extract.DefaultLocationConfig()
	asg := extract.DefaultAssignmentConfig()
	fc := feed.DefaultConfig()

	return &Settings{
		Paths: Paths{
			WZ:         "wz",
			Dist:       "dist",
			OutputFile: "bgm.json",
		},
		Feeds: Feeds{
			BuildURL:       fc.BuildURL,
			CatalogURL:     fc.CatalogURL,
			UserAgent:      fc.UserAgent,
			TimeoutSeconds: int(fc.Timeout / time.Second),
		},
		Archive: Archive{
			StringArchive: loc.Archive,
			MapNameImage:  loc.Image,
			MapArchive:    asg.Archive,
			MapDir:        asg.MapDir,
			MapDirPrefix:  asg.DirPrefix,
			ImageSuffix:   asg.Suffix,
			InfoNode:      asg.InfoNode,
			BgmNode:       asg.BgmNode,
		},
		Fanout: Fanout{
			LocationRegions: int(loc.Regions),
			LocationMaps:    int(loc.Maps),
			AssignmentDirs:  int(asg.Dirs),
			AssignmentFiles: int(asg.Files),
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads settings from a TOML file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := Decode(data, settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Decode merges TOML data into s. Unknown keys are rejected.
func Decode(data []byte, s *Settings) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	required := map[string]string{
		"paths.wz":               s.Paths.WZ,
		"paths.dist":             s.Paths.Dist,
		"paths.output_file":      s.Paths.OutputFile,
		"feeds.build_url":        s.Feeds.BuildURL,
		"feeds.catalog_url":      s.Feeds.CatalogURL,
		"archive.string_archive": s.Archive.StringArchive,
		"archive.map_name_image": s.Archive.MapNameImage,
		"archive.map_archive":    s.Archive.MapArchive,
		"archive.map_dir":        s.Archive.MapDir,
		"archive.info_node":      s.Archive.InfoNode,
		"archive.bgm_node":       s.Archive.BgmNode,
	}
	for _, key := range slices.Sorted(maps.Keys(required)) {
		if strings.TrimSpace(required[key]) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}

	if strings.ContainsAny(s.Paths.OutputFile, `/\`) {
		return fmt.Errorf("paths.output_file must be a file name, got %q", s.Paths.OutputFile)
	}
	if s.Feeds.TimeoutSeconds < 0 {
		return errors.New("feeds.timeout_seconds must not be negative")
	}

	fanouts := map[string]int{
		"fanout.location_regions": s.Fanout.LocationRegions,
		"fanout.location_maps":    s.Fanout.LocationMaps,
		"fanout.assignment_dirs":  s.Fanout.AssignmentDirs,
		"fanout.assignment_files": s.Fanout.AssignmentFiles,
	}
	for _, key := range slices.Sorted(maps.Keys(fanouts)) {
		if fanouts[key] < 0 {
			return fmt.Errorf("%s must not be negative (0 means unbounded)", key)
		}
	}

	switch strings.ToLower(strings.TrimSpace(s.Log.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", s.Log.Format)
	}
	return nil
}

// ToLocationConfig converts settings to an extract.LocationConfig.
func (s *Settings) ToLocationConfig() extract.LocationConfig {
	return extract.LocationConfig{
		Archive: s.Archive.StringArchive,
		Image:   s.Archive.MapNameImage,
		Regions: fanout.Limit(s.Fanout.LocationRegions),
		Maps:    fanout.Limit(s.Fanout.LocationMaps),
	}
}

// ToAssignmentConfig converts settings to an extract.AssignmentConfig.
func (s *Settings) ToAssignmentConfig() extract.AssignmentConfig {
	return extract.AssignmentConfig{
		Archive:   s.Archive.MapArchive,
		MapDir:    s.Archive.MapDir,
		DirPrefix: s.Archive.MapDirPrefix,
		Suffix:    s.Archive.ImageSuffix,
		InfoNode:  s.Archive.InfoNode,
		BgmNode:   s.Archive.BgmNode,
		Dirs:      fanout.Limit(s.Fanout.AssignmentDirs),
		Files:     fanout.Limit(s.Fanout.AssignmentFiles),
	}
}

// ToFeedConfig converts settings to a feed.Config.
func (s *Settings) ToFeedConfig() feed.Config {
	return feed.Config{
		BuildURL:   s.Feeds.BuildURL,
		CatalogURL: s.Feeds.CatalogURL,
		UserAgent:  s.Feeds.UserAgent,
		Timeout:    time.Duration(s.Feeds.TimeoutSeconds) * time.Second,
	}
}

// OutputPath returns the output file path, slash-separated and relative to
// the output filesystem.
func (s *Settings) OutputPath() string {
	return path.Join(s.Paths.Dist, s.Paths.OutputFile)
}

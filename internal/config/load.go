package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads the manifest at path. YAML and JSON are recognised by
// extension; anything else is read as YAML. Relative image paths and
// save_root are resolved against the manifest's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v.SetConfigType("json")
	default:
		v.SetConfigType("yaml")
	}
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("save_root", cfg.SaveRoot)
	v.SetDefault("duplicates", cfg.Duplicates)
	v.SetDefault("glyphs.base_code_point", cfg.Glyphs.BaseCodePoint)
	v.SetDefault("glyphs.max_entries", cfg.Glyphs.MaxEntries)
	v.SetDefault("glyphs.ascent", cfg.Glyphs.Ascent)
	v.SetDefault("glyphs.height", cfg.Glyphs.Height)
	v.SetDefault("glyphs.texture_namespace", cfg.Glyphs.TextureNamespace)
	v.SetDefault("intake.max_height", cfg.Intake.MaxHeight)
	v.SetDefault("intake.staging_dir", cfg.Intake.StagingDir)
	v.SetDefault("pack.format", cfg.Pack.Format)
	v.SetDefault("archive.format", cfg.Archive.Format)
	v.SetDefault("archive.checksum", cfg.Archive.Checksum)
	v.SetDefault("output.file_mode", cfg.Output.FileMode)
	v.SetDefault("output.dir_mode", cfg.Output.DirMode)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if v.GetInt("config_version") != CurrentConfigVersion {
		return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.SaveRoot = resolve(base, cfg.SaveRoot)
	cfg.Intake.StagingDir = resolve(base, cfg.Intake.StagingDir)
	for i := range cfg.Entries {
		cfg.Entries[i].Image = resolve(base, cfg.Entries[i].Image)
	}

	if _, err := cfg.Settings(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// WriteTemplate writes a starter manifest to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("manifest already exists at %s", path)
		}
	}

	cfg := Default()
	cfg.Name = "MyRanks"
	cfg.SaveRoot = "out"
	cfg.Entries = []EntryConfig{
		{Label: "vip", Image: "images/vip.png"},
		{Label: "mvp", Image: "images/mvp.png"},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

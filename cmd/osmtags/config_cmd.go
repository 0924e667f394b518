package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/osmtags/internal/config"
	"github.com/standardbeagle/osmtags/internal/display"
)

func (st *appState) configShowCommand(c *cli.Context) error {
	if c.String("format") == display.FormatText {
		return config.WriteTOML(c.App.Writer, st.cfg)
	}
	return render(c, st.cfg)
}

// configValidateCommand reloads the configuration without flag overrides,
// so it reports on exactly what the files and environment say.
func configValidateCommand(c *cli.Context) error {
	dir := c.String("dir")
	w := c.App.Writer

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(w, "❌ Configuration validation failed: %v\n", err)
		return err
	}

	var sources []string
	for _, name := range []string{config.KDLFileName, config.TOMLFileName, config.EnvFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			sources = append(sources, name)
		}
	}

	var warnings []string
	if cfg.Dataset.Dir != "" {
		if info, err := os.Stat(cfg.Dataset.Dir); err != nil || !info.IsDir() {
			warnings = append(warnings, fmt.Sprintf("dataset dir %s is not a directory", cfg.Dataset.Dir))
		}
	}
	if !cfg.Fuzzy.Enabled {
		warnings = append(warnings, "fuzzy suggestions are disabled, unknown keys get no did-you-mean hints")
	}

	fmt.Fprintf(w, "✅ Configuration is valid\n")
	if len(sources) == 0 {
		fmt.Fprintf(w, "📁 Config source: defaults (no config files in %s)\n", dir)
	} else {
		fmt.Fprintf(w, "📁 Config source: %v in %s\n", sources, dir)
	}
	dataset := cfg.Dataset.Dir
	if dataset == "" {
		dataset = "embedded"
	}
	fmt.Fprintf(w, "📊 Dataset: %s (locale %s), limits %d/%d, cache %d entries\n",
		dataset, cfg.Dataset.Locale, cfg.Search.DefaultLimit, cfg.Search.MaxLimit, cfg.Search.CacheSize)

	if len(warnings) > 0 {
		fmt.Fprintf(w, "\n⚠️  Warnings:\n")
		for _, warning := range warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	return nil
}

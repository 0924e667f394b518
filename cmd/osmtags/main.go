package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/osmtags/internal/config"
	"github.com/standardbeagle/osmtags/internal/debug"
	"github.com/standardbeagle/osmtags/internal/display"
	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/version"
)

var Version = version.Version

// appState is shared by the commands of one app run. The engine is built on
// first use so config commands never touch the dataset.
type appState struct {
	cfg    *config.Config
	engine *query.Engine
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	st := &appState{}
	return &cli.App{
		Name:                   "osmtags",
		Usage:                  "OpenStreetMap tagging schema lookups for AI assistants",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Project directory holding .osmtags.kdl, .osmtags.toml and .env",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "id-tagging-schema dist directory (overrides config; default is the embedded dataset)",
			},
			&cli.StringFlag{
				Name:    "locale",
				Aliases: []string{"l"},
				Usage:   "Dataset locale (overrides config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json or yaml",
				Value:   display.FormatText,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug output to stderr",
			},
		},
		Before: st.before,
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		// With no command, a piped stdin or an MCP parent means we were
		// launched by a client.
		Action: func(c *cli.Context) error {
			if isMCPMode() {
				return st.mcpCommand(c)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: st.commands(),
	}
}

func (st *appState) before(c *cli.Context) error {
	if !display.ValidFormat(c.String("format")) {
		return fmt.Errorf("invalid --format %q: use text, json or yaml", c.String("format"))
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	st.cfg = cfg

	// --debug traces to stderr; logging.debug in config traces to a file
	switch {
	case c.Bool("debug"):
		debug.SetEnabled(true)
		debug.SetDebugOutput(c.App.ErrWriter)
	case cfg.Logging.Debug:
		debug.SetEnabled(true)
		if _, err := debug.InitDebugLogFile(cfg.Logging.Dir); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "Warning: %v\n", err)
		}
	}
	debug.Printf("config loaded from %s: dataset %q locale %s\n", c.String("dir"), cfg.Dataset.Dir, cfg.Dataset.Locale)
	return nil
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	dir := c.String("dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", dir, err)
	}

	if dataDir := c.String("data-dir"); dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data dir %q: %w", dataDir, err)
		}
		cfg.Dataset.Dir = abs
	}
	if locale := c.String("locale"); locale != "" {
		cfg.Dataset.Locale = locale
	}
	return cfg, nil
}

// loadEngine loads the configured dataset through the shared schema cache.
func (st *appState) loadEngine(ctx context.Context) (*query.Engine, error) {
	if st.engine != nil {
		return st.engine, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ix, err := schema.DefaultCache().Get(ctx, st.cfg.Source())
	if err != nil {
		return nil, fmt.Errorf("failed to load tagging schema: %w", err)
	}
	debug.LogSchema("loaded %d presets from %s\n", len(ix.Presets()), ix.Source())
	st.engine = query.NewEngine(ix, st.cfg.QueryOptions())
	return st.engine, nil
}

// isMCPMode detects whether we're likely being called as an MCP server
func isMCPMode() bool {
	// Priority 1: Explicit environment variable (for MCP clients to set)
	if v := os.Getenv("OSMTAGS_MCP_MODE"); v == "1" || v == "true" {
		return true
	}

	// Priority 2: Non-terminal stdin (pipes, redirects) - likely JSON-RPC
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		return true
	}

	// Priority 3: Check if running as MCP server binary
	if len(os.Args) > 0 {
		arg0 := strings.ToLower(filepath.Base(os.Args[0]))
		if strings.Contains(arg0, "mcp") || strings.Contains(arg0, "server") {
			return true
		}
	}

	// Priority 4: Parent process detection (Linux-specific)
	return isParentMCPClient()
}

// isParentMCPClient checks if parent process suggests MCP usage (Linux-specific)
func isParentMCPClient() bool {
	ppid := os.Getppid()
	if ppid <= 1 {
		return false
	}

	parentCmd, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", ppid))
	if err != nil {
		return false
	}
	return isMCPClientName(string(parentCmd))
}

var mcpClients = []string{"mcp-tui", "mcp-client", "claude", "cursor", "vscode"}

func isMCPClientName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, client := range mcpClients {
		if strings.Contains(name, client) {
			return true
		}
	}
	return false
}

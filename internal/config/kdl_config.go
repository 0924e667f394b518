package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

func applyKDLFile(cfg *Config, path string) error {
	_, err := applyKDLFileFound(cfg, path)
	return err
}

// applyKDLFileFound overlays the KDL file at path onto cfg and reports
// whether the file existed.
func applyKDLFileFound(cfg *Config, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := parseKDLInto(cfg, string(content)); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// parseKDL parses a KDL config on top of the defaults.
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	if err := parseKDLInto(cfg, content); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseKDLInto sets only the values present in content.
func parseKDLInto(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "dataset":
			for _, cn := range n.Children {
				assignSimpleString(cn, "dir", func(v string) { cfg.Dataset.Dir = v })
				assignSimpleString(cn, "locale", func(v string) { cfg.Dataset.Locale = v })
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "default_limit":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DefaultLimit = v
					}
				case "max_limit":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxLimit = v
					}
				case "cache_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.CacheSize = v
					}
				}
			}
		case "suggest":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_presets":
					if v, ok := firstIntArg(cn); ok {
						cfg.Suggest.MaxPresets = v
					}
				case "max_optional_fields":
					if v, ok := firstIntArg(cn); ok {
						cfg.Suggest.MaxOptionalFields = v
					}
				}
			}
		case "fuzzy":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Fuzzy.Enabled = b
					}
				case "threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Fuzzy.Threshold = v
					}
				case "max_suggestions":
					if v, ok := firstIntArg(cn); ok {
						cfg.Fuzzy.MaxSuggestions = v
					}
				}
			}
		case "logging":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Logging.Dir = s
					}
				case "debug":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Logging.Debug = b
					}
				}
			}
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}
func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		log.Printf("WARNING: invalid float value for '%s' in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}
func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

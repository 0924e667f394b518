package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/osmtags/internal/debug"
	"github.com/standardbeagle/osmtags/internal/display"
	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/tags"
)

const (
	convertToJSON = "json"
	convertToText = "text"
)

// queryFunc runs one engine operation and returns the value to render.
type queryFunc func(c *cli.Context, e *query.Engine) (any, error)

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of results (0 uses the configured default)",
	}
}

func (st *appState) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "values",
			Usage:     "List the known values of a tag key",
			ArgsUsage: "<key>",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				key, err := requireArg(c, 0, "key")
				if err != nil {
					return nil, err
				}
				return e.GetTagValues(key), nil
			}),
		},
		{
			Name:      "info",
			Usage:     "Show the field definition and documented values of a tag key",
			ArgsUsage: "<key>",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				key, err := requireArg(c, 0, "key")
				if err != nil {
					return nil, err
				}
				return e.GetTagInfo(key), nil
			}),
		},
		{
			Name:      "search",
			Aliases:   []string{"s"},
			Usage:     "Search tags by keyword",
			ArgsUsage: "<keyword>",
			Flags:     []cli.Flag{limitFlag()},
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				keyword, err := requireArg(c, 0, "keyword")
				if err != nil {
					return nil, err
				}
				return e.SearchTags(keyword, c.Int("limit")), nil
			}),
		},
		{
			Name:      "presets",
			Usage:     "Search presets by keyword, geometry and id pattern",
			ArgsUsage: "[keyword]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "geometry",
					Aliases: []string{"g"},
					Usage:   "Only presets for this geometry (point, vertex, line, area, relation)",
				},
				&cli.StringFlag{
					Name:  "id-pattern",
					Usage: "Glob over preset ids, e.g. 'amenity/parking*'",
				},
				limitFlag(),
			},
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				return e.SearchPresets(query.PresetSearch{
					Keyword:   c.Args().First(),
					Geometry:  c.String("geometry"),
					IDPattern: c.String("id-pattern"),
					Limit:     c.Int("limit"),
				})
			}),
		},
		{
			Name:      "preset",
			Usage:     "Show a preset's fields, geometry and tags",
			ArgsUsage: "<preset-id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "tags",
					Usage: "Only show the preset's tags and addTags",
				},
			},
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				id, err := requireArg(c, 0, "preset-id")
				if err != nil {
					return nil, err
				}
				if c.Bool("tags") {
					return e.GetPresetTags(id), nil
				}
				return e.GetPresetDetails(id), nil
			}),
		},
		{
			Name:  "categories",
			Usage: "List preset categories",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				return e.GetCategories(), nil
			}),
		},
		{
			Name:      "category",
			Usage:     "List the presets and tags of a category (id or name)",
			ArgsUsage: "<category>",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				if c.NArg() == 0 {
					return nil, osmerrors.NewMissingParameterError("category", "category")
				}
				// names may be given unquoted: category Parking Features
				return e.GetCategoryTags(strings.Join(c.Args().Slice(), " ")), nil
			}),
		},
		{
			Name:      "related",
			Usage:     "Show tags that co-occur with a key or key=value across presets",
			ArgsUsage: "<key> [value]",
			Flags:     []cli.Flag{limitFlag()},
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				key, value, err := keyValueArgs(c, false)
				if err != nil {
					return nil, err
				}
				return e.GetRelatedTags(key, value, c.Int("limit")), nil
			}),
		},
		{
			Name:      "deprecated",
			Usage:     "Check whether a key or tag is deprecated",
			ArgsUsage: "<key> [value]",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				key, value, err := keyValueArgs(c, false)
				if err != nil {
					return nil, err
				}
				return e.CheckDeprecated(key, value), nil
			}),
		},
		{
			Name:      "validate",
			Usage:     "Validate a single tag",
			ArgsUsage: "<key> <value> | <key=value>",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				key, value, err := keyValueArgs(c, true)
				if err != nil {
					return nil, err
				}
				return e.ValidateTag(key, value), nil
			}),
		},
		{
			Name:      "validate-all",
			Usage:     "Validate a tag collection given as arguments or on stdin",
			ArgsUsage: "[key=value ...]",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				t, err := readTags(c)
				if err != nil {
					return nil, err
				}
				return e.ValidateTagCollection(t), nil
			}),
		},
		{
			Name:      "suggest",
			Usage:     "Suggest missing fields and replacements for a tag collection",
			ArgsUsage: "[key=value ...]",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				t, err := readTags(c)
				if err != nil {
					return nil, err
				}
				return e.SuggestImprovements(t), nil
			}),
		},
		{
			Name:      "convert",
			Usage:     "Convert tags between key=value text and JSON",
			ArgsUsage: "[key=value ... | JSON object]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "to",
					Usage: "Target format: json or text",
					Value: convertToJSON,
				},
			},
			Action: convertCommand,
		},
		{
			Name:  "stats",
			Usage: "Show dataset statistics",
			Action: st.run(func(c *cli.Context, e *query.Engine) (any, error) {
				return e.GetSchemaStats(), nil
			}),
		},
		{
			Name:   "mcp",
			Usage:  "Serve the tools over MCP on stdio",
			Action: st.mcpCommand,
		},
		{
			Name:  "config",
			Usage: "Configuration management",
			Subcommands: []*cli.Command{
				{
					Name:   "show",
					Usage:  "Show the effective configuration (text format prints TOML)",
					Action: st.configShowCommand,
				},
				{
					Name:   "validate",
					Usage:  "Validate the configuration files and environment",
					Action: configValidateCommand,
				},
			},
		},
	}
}

// run adapts a query to a cli action: it loads the engine and renders the
// result in the global output format.
func (st *appState) run(fn queryFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := st.loadEngine(c.Context)
		if err != nil {
			return err
		}
		debug.LogQuery("%s %s\n", c.Command.Name, strings.Join(c.Args().Slice(), " "))
		v, err := fn(c, e)
		if err != nil {
			return err
		}
		return render(c, v)
	}
}

func render(c *cli.Context, v any) error {
	rf := display.NewResultFormatter(display.FormatterOptions{Format: c.String("format")})
	out, err := rf.Format(v)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = io.WriteString(c.App.Writer, out)
	return err
}

func requireArg(c *cli.Context, i int, name string) (string, error) {
	if c.NArg() <= i {
		return "", osmerrors.NewMissingParameterError(c.Command.Name, name)
	}
	return c.Args().Get(i), nil
}

// keyValueArgs accepts "key value" or a single "key=value" argument. The
// value may be empty; when valueRequired, it must still be given.
func keyValueArgs(c *cli.Context, valueRequired bool) (string, string, error) {
	key, err := requireArg(c, 0, "key")
	if err != nil {
		return "", "", err
	}
	if c.NArg() >= 2 {
		return key, c.Args().Get(1), nil
	}
	if k, v, ok := strings.Cut(key, "="); ok {
		return k, v, nil
	}
	if valueRequired {
		return "", "", osmerrors.NewMissingParameterError(c.Command.Name, "value")
	}
	return key, "", nil
}

// readTags reads a tag collection from the arguments, one key=value each or
// a single JSON object, and from stdin when there are none.
func readTags(c *cli.Context) (tags.Tags, error) {
	if c.NArg() > 0 {
		return tags.ParseText(strings.Join(c.Args().Slice(), "\n"))
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return tags.Tags{}, fmt.Errorf("failed to read tags from stdin: %w", err)
	}
	return tags.ParseText(string(data))
}

func convertCommand(c *cli.Context) error {
	t, err := readTags(c)
	if err != nil {
		return err
	}

	var out string
	switch c.String("to") {
	case convertToJSON:
		if out, err = tags.ToJSON(t); err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
	case convertToText:
		out = tags.Format(t)
	default:
		return fmt.Errorf("invalid --to %q: use json or text", c.String("to"))
	}
	_, err = fmt.Fprintln(c.App.Writer, out)
	return err
}

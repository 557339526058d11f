package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/mcp"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/web"
)

// appEnv carries the dependencies shared by all commands.
type appEnv struct {
	db     *sql.DB
	cfg    *config.Config
	logger *zap.Logger
	level  zap.AtomicLevel
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	if env.cfg == nil {
		env.cfg = config.DefaultConfig()
	}
	if env.logger == nil {
		env.logger = zap.NewNop()
	}
	if env.level == (zap.AtomicLevel{}) {
		env.level = zap.NewAtomicLevel()
	}

	app := &cli.App{
		Name:    "satchel",
		Usage:   "Trip capsule planner",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Log at debug level"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				env.level.SetLevel(zap.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			planCmd(env),
			showCmd(env),
			listCmd(env),
			deleteCmd(env),
			purgeCmd(env),
			packCmd(env),
			checkCmd(env),
			styleCmd(),
			serveCmd(env),
			mcpCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addressFlags are shared by commands that take a trip by id or name.
func addressFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Trip name"},
	}
}

// addressFrom returns the positional id, or the --name flag.
func addressFrom(c *cli.Context) (id, name string) {
	if c.NArg() > 0 {
		return c.Args().First(), ""
	}
	return "", c.String("name")
}

// planCmd creates the plan command.
func planCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Plan (or re-plan) a trip capsule from a trip file",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "Trip file (.yaml or .json), or - for stdin"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Trip name (overrides the file)"},
			&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Starting wardrobe location (overrides the file)"},
			&cli.StringFlag{Name: "activities", Aliases: []string{"a"}, Usage: "Comma-separated activities (overrides the file)"},
			&cli.StringFlag{Name: "gender", Usage: "Profile gender (overrides the file)"},
			&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Free-text request (overrides the file)"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Rebuild even when the stored capsule is up to date"},
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"md"}, Usage: "Print the capsule as markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			tf, err := loadTripFile(c.String("input"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			input := ops.PlanInput{
				ID:             tf.ID,
				Name:           tf.Name,
				Wardrobe:       tf.Wardrobe,
				LocationID:     tf.LocationID,
				LocationLabels: tf.LocationLabels,
				Weather:        tf.Weather,
				Activities:     tf.Activities,
				Gender:         tf.Gender,
				Prompt:         tf.Prompt,
			}
			if c.NArg() > 0 {
				input.ID, input.Name = c.Args().First(), ""
			}
			if c.IsSet("name") {
				input.ID, input.Name = "", c.String("name")
			}
			if c.IsSet("location") {
				input.LocationID = c.String("location")
			}
			if c.IsSet("activities") {
				input.Activities = splitList(c.String("activities"))
			}
			if c.IsSet("gender") {
				input.Gender = c.String("gender")
			}
			if c.IsSet("prompt") {
				input.Prompt = c.String("prompt")
			}
			if c.Bool("force") {
				input.Mode = string(capsule.ModeForce)
			}

			planner := ops.NewPlanner(env.db, env.cfg, env.logger.Named("plan"))
			output, err := planner.Plan(c.Context, input)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				return outputMarkdown(c.App.Writer, &output.Trip)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// showCmd creates the show command.
func showCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a trip by ID or name",
		ArgsUsage: "[id]",
		Flags: append(addressFlags(),
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted trips"},
			&cli.BoolFlag{Name: "no-capsule", Usage: "Exclude outfits and packing list from output"},
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"md"}, Usage: "Print the capsule as markdown instead of JSON"},
		),
		Action: func(c *cli.Context) error {
			id, name := addressFrom(c)
			input := ops.FetchInput{
				ID:             id,
				Name:           name,
				IncludeDeleted: c.Bool("include-deleted"),
			}
			if c.Bool("no-capsule") {
				includeCapsule := false
				input.IncludeCapsule = &includeCapsule
			}

			output, err := ops.Fetch(c.Context, env.db, input)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				return outputMarkdown(c.App.Writer, &output.Trip)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// listCmd creates the list command.
func listCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List trips, most recently updated first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "location", Usage: "Only trips starting from this location"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted trips"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, env.db, ops.ListInput{
				LocationID:     c.String("location"),
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a trip",
		ArgsUsage: "[id]",
		Flags:     addressFlags(),
		Action: func(c *cli.Context) error {
			id, name := addressFrom(c)
			output, err := ops.Delete(c.Context, env.db, ops.DeleteInput{ID: id, Name: name})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete soft-deleted trips",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if deleted more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(c.Context, env.db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// packCmd creates the pack command.
func packCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "Mark a wardrobe item as packed in a trip's capsule",
		ArgsUsage: "[id]",
		Flags: append(addressFlags(),
			&cli.StringFlag{Name: "item", Required: true, Usage: "Wardrobe item ID"},
			&cli.BoolFlag{Name: "unpack", Usage: "Clear the packed flag instead"},
		),
		Action: func(c *cli.Context) error {
			id, name := addressFrom(c)
			packed := !c.Bool("unpack")

			output, err := ops.Pack(c.Context, env.db, ops.PackInput{
				ID:             id,
				Name:           name,
				WardrobeItemID: c.String("item"),
				Packed:         &packed,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// checkCmd creates the check command.
func checkCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check whether a stored capsule is stale and which invariants it breaks",
		ArgsUsage: "[id]",
		Flags: append(addressFlags(),
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Trip file with the current wardrobe (enables the fingerprint check)"},
		),
		Action: func(c *cli.Context) error {
			id, name := addressFrom(c)
			input := ops.CheckInput{
				ID:          id,
				Name:        name,
				LocationMin: env.cfg.LocationMinItems,
			}

			if path := c.String("input"); path != "" {
				tf, err := loadTripFile(path)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.Wardrobe = tf.Wardrobe
				input.LocationLabels = tf.LocationLabels
				input.Gender = tf.Gender
				input.Prompt = tf.Prompt
			}

			output, err := ops.Check(c.Context, env.db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// styleCmd creates the style command.
func styleCmd() *cli.Command {
	return &cli.Command{
		Name:  "style",
		Usage: "Resolve the style presentation for a wardrobe",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "Trip file (.yaml or .json), or - for stdin"},
			&cli.StringFlag{Name: "gender", Usage: "Profile gender (overrides the file)"},
			&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Free-text request (overrides the file)"},
		},
		Action: func(c *cli.Context) error {
			tf, err := loadTripFile(c.String("input"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			if len(tf.Wardrobe) == 0 {
				return outputError(errors.NewInvalidRequest("trip file has no wardrobe items"))
			}

			input := ops.StyleCheckInput{Items: tf.Wardrobe, Gender: tf.Gender, Prompt: tf.Prompt}
			if c.IsSet("gender") {
				input.Gender = c.String("gender")
			}
			if c.IsSet("prompt") {
				input.Prompt = c.String("prompt")
			}

			return outputJSON(c.App.Writer, ops.StyleCheck(input))
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8217, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			logger := env.logger.Named("web")
			srv, err := web.NewServer(env.db, env.cfg, logger, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, logger); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio (the default when stdin is piped)",
		Action: func(c *cli.Context) error {
			if err := mcp.Run(env.db, env.cfg, env.logger.Named("mcp"), Version); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputMarkdown writes a trip's capsule as markdown.
func outputMarkdown(w io.Writer, t *capsule.Trip) error {
	if t.Capsule == nil {
		return outputError(errors.NewInvalidRequest("trip has no capsule"))
	}
	_, err := io.WriteString(w, capsule.Markdown(t.NameRaw, t.Capsule))
	return err
}

// outputError formats error for CLI.
func outputError(err error) error {
	var sErr *errors.SatchelError
	if stderrors.As(err, &sErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// splitList splits a comma-separated string, dropping blanks.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}

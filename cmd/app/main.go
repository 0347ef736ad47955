package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/raido/internal"
	"github.com/starford/raido/internal/code"
	"github.com/starford/raido/internal/codeservice"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/recents"
	"github.com/starford/raido/internal/storage"
	pkgconfig "github.com/starford/raido/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// runMCP builds the index from the workspace and serves MCP tools on
// stdin/stdout. MCP hosts often launch the binary without a config file,
// so a missing one means defaults.
func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	store, err := storage.NewFS(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	history, err := recents.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init recents: %w", err)
	}
	defer history.Close()

	// MCP runs on stdout, so log to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	idx := index.New()
	if err := index.Sync(idx, store, cfg.Workspace.Extensions, logger); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}

	svc := codeservice.NewService(store, idx, history)
	return mcpserver.New(svc).ServeStdio()
}

// printCode computes the code for a path offline: the hash depends only
// on the path string, so no server or index is needed.
func printCode(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: raido code <workspace-relative path>")
	}

	c := code.Hash(path)
	out := c
	if cmd.Bool("url") {
		out = codeservice.CodeURL(c)
	}

	fmt.Println(out)

	if cmd.Bool("copy") {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

func newConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "raido",
		Usage:  "Quick-open server mapping workspace files to short, typeable codes",
		Action: runServer,
		Flags:  []cli.Flag{newConfigFlag()},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve code lookup tools over MCP stdio transport",
				Action: runMCP,
				Flags:  []cli.Flag{newConfigFlag()},
			},
			{
				Name:      "code",
				Usage:     "Print the short code for a path",
				ArgsUsage: "<path>",
				Action:    printCode,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "url",
						Usage: "Print the raido:// open URL instead of the bare code",
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Also copy the output to the clipboard",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

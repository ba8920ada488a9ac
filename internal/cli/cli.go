// Package cli implements the parsetype command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/pkg/buildinfo"
	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/convert"
)

// appName is the application name used for directories and display.
const appName = "parsetype"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "parsetype matches text against typed format strings",
		Long:         `parsetype compiles format strings like "{name:w} is {age:d}" into typed matchers and extracts values from text, the inverse of template formatting. Custom types come from TOML definitions or stored schemas.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Make the shared logger reachable from command contexts.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.vizCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadRegistry builds a converter registry from an optional TOML
// definitions file. The raw definitions table is returned alongside the
// registry so cache keys can include it: editing a pattern in the file
// must not revive results cached under the old definitions.
func loadRegistry(typesPath string) (*convert.Registry, map[string]convert.TypeDef, error) {
	if typesPath == "" {
		return nil, nil, nil
	}
	defs, err := convert.LoadDefs(typesPath)
	if err != nil {
		return nil, nil, err
	}
	convs, err := convert.FromDefs(defs)
	if err != nil {
		return nil, nil, err
	}
	reg, err := convert.BuildTypeDict(convs...)
	if err != nil {
		return nil, nil, err
	}
	return reg, defs, nil
}

// newCache creates the CLI result cache: file-backed under the user cache
// directory, or a null cache when disabled.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the on-disk cache location.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

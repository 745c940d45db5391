// Package cli implements the pedigraph command-line interface.
//
// Commands load a GEDCOM file, run one analysis from pkg/lineage or
// pkg/report, and print a styled text report. The CLI is built with cobra;
// logging uses charmbracelet/log and goes to stderr so reports on stdout
// stay pipeable.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/buildinfo"
	"github.com/pedigraph/pedigraph/pkg/config"
	"github.com/pedigraph/pedigraph/pkg/gedcom"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// appName is the application name used for directories and display.
const appName = "pedigraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pedigraph analyzes family-tree structure from GEDCOM files",
		Long:         `Pedigraph answers pedigree-structure questions over GEDCOM family trees: ancestor lines, consanguinity (Wright's coefficient of inbreeding), descendant counts, and brick-wall ancestors ranked by research priority.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/pedigraph/config.toml)")

	root.AddCommand(c.coiCommand())
	root.AddCommand(c.ancestorsCommand())
	root.AddCommand(c.descendantsCommand())
	root.AddCommand(c.brickwallsCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadTree parses the GEDCOM file and logs basic counts.
func (c *CLI) loadTree(path string) (*pedigree.Store, error) {
	prog := newProgress(c.Logger)
	store, err := gedcom.ParseFile(path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded %d persons and %d families from %s", store.PersonCount(), store.FamilyCount(), path)
	return store, nil
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(format string, args ...any) {
	p.logger.Infof(format+" (%s)", append(args, time.Since(p.start).Round(time.Millisecond))...)
}

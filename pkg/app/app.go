package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/birdayz/emojibytes/pkg/alphabet"
	"github.com/birdayz/emojibytes/pkg/codec"
	"github.com/birdayz/emojibytes/pkg/config"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg          config.Config
	CfgFile      string
	AlphabetFlag string
	Verbose      bool

	Log    *logrus.Logger
	Keyfmt *prettyjson.Formatter

	// Display
	NoHeaderFlag bool

	// Root command reference (for completion generation)
	Root *cobra.Command
}

// New creates an App with sane defaults.
func New() *App {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Log:          log,
		Keyfmt:       prettyjson.NewFormatter(),
	}
}

// InitConfig sets up logging and reads the config file.
// Called by PersistentPreRunE on the root command.
func (a *App) InitConfig() error {
	a.Log.SetOutput(a.ErrWriter)
	a.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.Verbose {
		a.Log.SetLevel(logrus.DebugLevel)
	}

	var err error
	a.Cfg, err = config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.Cfg.AlphabetOverride = a.AlphabetFlag

	a.Log.WithFields(logrus.Fields{
		"path":      a.Cfg.Path(),
		"alphabets": len(a.Cfg.Alphabets),
		"current":   a.Cfg.CurrentAlphabet,
	}).Debug("loaded config")
	return nil
}

// AlphabetName is the alphabet selected by flag, then config, then default.
func (a *App) AlphabetName() string {
	if name := a.Cfg.ActiveAlphabet(); name != "" {
		return name
	}
	return alphabet.DefaultName
}

// ResolveAlphabet looks name up among the built-in alphabets first, then
// the configured ones.
func (a *App) ResolveAlphabet(name string) (*alphabet.Alphabet, error) {
	if abc, ok := alphabet.Builtin(name); ok {
		a.Log.WithFields(logrus.Fields{"alphabet": name, "source": "builtin"}).Debug("resolved alphabet")
		return abc, nil
	}
	if c := a.Cfg.Alphabet(name); c != nil {
		abc, err := c.Build()
		if err != nil {
			return nil, err
		}
		a.Log.WithFields(logrus.Fields{"alphabet": name, "source": "config", "size": abc.Size()}).Debug("resolved alphabet")
		return abc, nil
	}
	return nil, fmt.Errorf("unknown alphabet %q, must be one of: %s", name, strings.Join(a.AlphabetNames(), ", "))
}

// NewCodec builds a codec for the selected alphabet.
func (a *App) NewCodec() (*codec.Codec, error) {
	abc, err := a.ResolveAlphabet(a.AlphabetName())
	if err != nil {
		return nil, err
	}
	return codec.New(abc), nil
}

// AlphabetNames lists built-in names followed by configured ones.
func (a *App) AlphabetNames() []string {
	names := alphabet.BuiltinNames()
	for _, c := range a.Cfg.Alphabets {
		names = append(names, c.Name)
	}
	return names
}

// AddAlphabetFlag installs --alphabet on cmd.
func (a *App) AddAlphabetFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.AlphabetFlag, "alphabet", "a", "", "Alphabet to use: 2, 4, 16, 256 or a configured name (default is the configured alphabet, else 256)")
	if err := cmd.RegisterFlagCompletionFunc("alphabet", a.ValidAlphabetArgs); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
}

// AddNoHeadersFlag installs --no-headers on cmd.
func (a *App) AddNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.NoHeaderFlag, "no-headers", false, "Hide table headers")
}

// ValidAlphabetArgs provides shell completion for alphabet names.
func (a *App) ValidAlphabetArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return a.AlphabetNames(), cobra.ShellCompDirectiveNoFileComp
}

// ValidConfigArgs provides shell completion for configured alphabet names.
func (a *App) ValidConfigArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(a.Cfg.Alphabets))
	for _, c := range a.Cfg.Alphabets {
		names = append(names, c.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}

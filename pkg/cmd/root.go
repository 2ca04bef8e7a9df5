package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/emojibytes/pkg/app"
	"github.com/birdayz/emojibytes/pkg/cmd/alphabet"
	"github.com/birdayz/emojibytes/pkg/cmd/completion"
	ebconfig "github.com/birdayz/emojibytes/pkg/cmd/config"
	"github.com/birdayz/emojibytes/pkg/cmd/transcode"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(app.New(), version, commit).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := transcode.NewCommand(a)
	root.Version = fmt.Sprintf("%s (%s)", version, commit)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.OutWriter = cmd.OutOrStdout()
		a.ErrWriter = cmd.ErrOrStderr()
		a.InReader = cmd.InOrStdin()

		if a.OutWriter != os.Stdout {
			a.ColorableOut = a.OutWriter
			a.Keyfmt.DisabledColor = true
		}

		return a.InitConfig()
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.emojibytes/config)")
	root.PersistentFlags().BoolVar(&a.Verbose, "verbose", false, "Log debug output to stderr")

	root.AddCommand(
		alphabet.NewCommand(a),
		alphabet.NewAlphabetsAlias(a),
		ebconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}

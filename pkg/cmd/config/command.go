package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/birdayz/emojibytes/pkg/app"
)

// NewCommand returns the "emojibytes config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle emojibytes configuration",
	}

	cmd.AddCommand(
		newCurrentAlphabetCommand(a),
		newUseAlphabetCommand(a),
		newGetAlphabetsCommand(a),
		newAddAlphabetCommand(a),
		newRemoveAlphabetCommand(a),
		newSelectAlphabetCommand(a),
	)

	return cmd
}

func newCurrentAlphabetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "current-alphabet",
		Short: "Displays the alphabet used when --alphabet is not given",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.OutWriter, a.AlphabetName())
		},
	}
}

func newUseAlphabetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "use-alphabet [NAME]",
		Short:             "Sets the current alphabet in the configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidAlphabetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.Cfg.SetCurrentAlphabet(name); err != nil {
				return fmt.Errorf("unable to use alphabet %v: %w", name, err)
			}
			fmt.Fprintf(a.OutWriter, "Switched to alphabet \"%v\".\n", name)
			return nil
		},
	}
}

func newGetAlphabetsCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-alphabets",
		Short: "Display alphabets in the configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !a.NoHeaderFlag {
				fmt.Fprintln(a.OutWriter, "  NAME")
			}
			for _, c := range a.Cfg.Alphabets {
				marker := "  "
				if c.Name == a.Cfg.CurrentAlphabet {
					marker = "* "
				}
				fmt.Fprintf(a.OutWriter, "%s%s\n", marker, c.Name)
			}
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func newAddAlphabetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "add-alphabet [NAME] [SYMBOLS]",
		Short:   "Add an alphabet of 2, 4, 16 or 256 distinct symbols",
		Example: "emojibytes config add-alphabet suits '♠♥♦♣'",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cfg.AddAlphabet(args[0], args[1]); err != nil {
				return fmt.Errorf("could not add alphabet: %w", err)
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Added alphabet.")
			return nil
		},
	}
}

func newRemoveAlphabetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "remove-alphabet [NAME]",
		Short:             "remove alphabet",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidConfigArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cfg.RemoveAlphabet(args[0]); err != nil {
				return fmt.Errorf("could not delete alphabet: %w", err)
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Removed alphabet.")
			return nil
		},
	}
}

func newSelectAlphabetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-alphabet",
		Short: "Interactively select an alphabet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := a.AlphabetNames()
			pos := 0
			for k, name := range names {
				if name == a.AlphabetName() {
					pos = k
				}
			}

			searcher := func(input string, index int) bool {
				name := strings.ReplaceAll(strings.ToLower(names[index]), " ", "")
				input = strings.ReplaceAll(strings.ToLower(input), " ", "")
				return strings.Contains(name, input)
			}

			p := promptui.Select{
				Label:     "Select alphabet",
				Items:     names,
				Searcher:  searcher,
				Size:      10,
				CursorPos: pos,
			}

			_, selected, err := p.Run()
			if err != nil {
				// User cancelled (e.g. Ctrl-C). Not an error.
				return nil
			}

			if err := a.Cfg.SetCurrentAlphabet(selected); err != nil {
				return fmt.Errorf("unable to use alphabet %v: %w", selected, err)
			}
			fmt.Fprintf(a.OutWriter, "Switched to alphabet \"%v\".\n", selected)
			return nil
		},
	}
}

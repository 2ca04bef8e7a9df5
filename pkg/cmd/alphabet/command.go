package alphabet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/emojibytes/pkg/app"
	pkgalphabet "github.com/birdayz/emojibytes/pkg/alphabet"
)

// NewCommand returns the "emojibytes alphabet" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alphabet",
		Short: "List and show alphabets",
	}

	cmd.AddCommand(
		newListCommand(a),
		newShowCommand(a),
	)

	return cmd
}

// NewAlphabetsAlias returns the top-level "alphabets" alias.
func NewAlphabetsAlias(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alphabets",
		Short: "List built-in and configured alphabets",
		Args:  cobra.NoArgs,
		RunE:  listAlphabetsRunE(a),
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func newListCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List built-in and configured alphabets",
		Args:    cobra.NoArgs,
		RunE:    listAlphabetsRunE(a),
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func listAlphabetsRunE(a *app.App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		active := a.AlphabetName()

		w := app.NewTabWriter(a.OutWriter)
		if !a.NoHeaderFlag {
			fmt.Fprintf(w, "NAME\tSIZE\tWIDTH\tGROUPS\tSYMBOLS\t\n")
		}

		for _, name := range a.AlphabetNames() {
			abc, err := a.ResolveAlphabet(name)
			if err != nil {
				// A broken config entry should not hide the others.
				fmt.Fprintf(w, "%v\t-\t-\t-\t%v\t\n", marked(name, active), err)
				continue
			}
			fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t\n", marked(name, active), abc.Size(), abc.Width(), abc.GroupsPerByte(), preview(abc))
		}

		w.Flush()
		return nil
	}
}

func marked(name, active string) string {
	if name == active {
		return "* " + name
	}
	return "  " + name
}

const previewLen = 16

func preview(abc *pkgalphabet.Alphabet) string {
	symbols := abc.Symbols()
	if len(symbols) <= previewLen {
		return string(symbols)
	}
	return string(symbols[:previewLen]) + "…"
}

type symbolEntry struct {
	Value     int    `json:"value"`
	Bits      string `json:"bits"`
	Symbol    string `json:"symbol"`
	CodePoint string `json:"code_point"`
}

type alphabetView struct {
	Name          string        `json:"name"`
	Size          int           `json:"size"`
	Width         int           `json:"width"`
	GroupsPerByte int           `json:"groups_per_byte"`
	Symbols       []symbolEntry `json:"symbols"`
}

func newShowCommand(a *app.App) *cobra.Command {
	outputFormat := app.OutputFormatDefault

	cmd := &cobra.Command{
		Use:               "show [NAME]",
		Short:             "Show every value of an alphabet and its symbol",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.ValidAlphabetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.AlphabetName()
			if len(args) == 1 {
				name = args[0]
			}
			abc, err := a.ResolveAlphabet(name)
			if err != nil {
				return err
			}

			view := alphabetView{
				Name:          name,
				Size:          abc.Size(),
				Width:         abc.Width(),
				GroupsPerByte: abc.GroupsPerByte(),
			}
			for i, r := range abc.Symbols() {
				view.Symbols = append(view.Symbols, symbolEntry{
					Value:     i,
					Bits:      fmt.Sprintf("%0*b", abc.Width(), i),
					Symbol:    string(r),
					CodePoint: fmt.Sprintf("%U", r),
				})
			}

			if outputFormat == app.OutputFormatJSON {
				out, err := a.FormatJSON(view)
				if err != nil {
					return fmt.Errorf("unable to format alphabet: %w", err)
				}
				_, _ = a.ColorableOut.Write(out)
				fmt.Fprintln(a.OutWriter)
				return nil
			}

			fmt.Fprintf(a.OutWriter, "Alphabet %s: %d symbols, %d bits each, %d per byte\n\n", view.Name, view.Size, view.Width, view.GroupsPerByte)
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "VALUE\tBITS\tSYMBOL\tCODE POINT\t\n")
			}
			for _, e := range view.Symbols {
				fmt.Fprintf(w, "%v\t%v\t%v\t%v\t\n", e.Value, e.Bits, e.Symbol, e.CodePoint)
			}
			w.Flush()
			return nil
		},
	}

	a.AddNoHeadersFlag(cmd)
	cmd.Flags().VarP(&outputFormat, "output", "o", "Set output format: default, json")
	if err := cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
	return cmd
}

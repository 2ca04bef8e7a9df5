package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
)

// OutputFormat controls how listings are printed.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSON    OutputFormat = "json"
)

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "default", "json":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: default, json")
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"default", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// RenderTemplate runs data through the go template engine with the hermetic
// sprig functions.
func RenderTemplate(data []byte) ([]byte, error) {
	tpl, err := template.New("emojibytes").Funcs(sprig.HermeticTxtFuncMap()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse go template: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, nil); err != nil {
		return nil, fmt.Errorf("failed to execute go template: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatJSON pretty-prints v as colored JSON.
func (a *App) FormatJSON(v any) ([]byte, error) {
	return a.Keyfmt.Marshal(v)
}

// FormatMsgPack renders msgpack encoded data as pretty JSON. If data is not
// msgpack the problem is reported on ErrWriter and data is returned as-is.
func (a *App) FormatMsgPack(data []byte) []byte {
	var obj any
	if err := msgpack.Unmarshal(data, &obj); err != nil {
		fmt.Fprintf(a.ErrWriter, "could not decode msgpack data: %v\n", err)
		return data
	}

	jzon, err := json.Marshal(obj)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "could not decode msgpack data: %v\n", err)
		return data
	}

	out, err := a.Keyfmt.Format(jzon)
	if err != nil {
		return jzon
	}
	return out
}

package transcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/birdayz/emojibytes/pkg/alphabet"
	"github.com/birdayz/emojibytes/pkg/app"
	"github.com/birdayz/emojibytes/pkg/codec"
	"github.com/birdayz/emojibytes/pkg/encoding"
	"github.com/birdayz/emojibytes/pkg/fileio"
)

// stdinOperand makes the command read its input from stdin.
const stdinOperand = "-"

// Options are the flags of the encode/decode command.
type Options struct {
	Decode   bool
	Output   string
	Raw      bool
	Template bool
	MsgPack  bool
}

// NewCommand returns the command that encodes or decodes its operand. It is
// installed as the root command.
func NewCommand(a *app.App) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "emojibytes [flags] MESSAGE|FILE",
		Short: "Encode bytes as emoji and back",
		Long: "Encode a message or file as a sequence of emoji, or decode such a sequence back to bytes. " +
			"Each byte is split into equal-width groups of bits, one emoji per group, using an alphabet of 2, 4, 16 or 256 symbols. " +
			"If the operand names an existing file it is read, if it is - stdin is read, otherwise it is used as the message.",
		Example: `  emojibytes Hello
  emojibytes -a 2 Hello
  emojibytes -d 🎏🎬🎳🎳🎶
  emojibytes notes.txt -o notes.emoji
  cat notes.txt | emojibytes -
  emojibytes -r image.png
  emojibytes -d -r encoded-image.png -o image.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(a, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Decode, "decode", "d", false, "Decode the operand instead of encoding it")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the result to this file (default for file operands is encoded-FILE or decoded-FILE)")
	cmd.Flags().BoolVarP(&opts.Raw, "raw", "r", false, "Treat the file or stdin operand as raw binary data instead of latin-1 text")
	cmd.Flags().BoolVar(&opts.Template, "template", false, "Run the message through the go template engine before encoding")
	cmd.Flags().BoolVar(&opts.MsgPack, "msgpack", false, "Show decoded bytes as JSON, reading them as msgpack")
	a.AddAlphabetFlag(cmd)

	return cmd
}

// Run encodes or decodes operand according to opts.
func Run(a *app.App, opts Options, operand string) error {
	fromStdin := operand == stdinOperand
	isFile := !fromStdin && fileio.IsFile(operand)
	if err := opts.validate(isFile, fromStdin); err != nil {
		return err
	}

	c, err := a.NewCodec()
	if err != nil {
		return err
	}

	log := a.Log.WithFields(logrus.Fields{
		"alphabet": a.AlphabetName(),
		"decode":   opts.Decode,
		"raw":      opts.Raw,
		"file":     isFile,
		"stdin":    fromStdin,
	})
	log.Debug("transcoding operand")

	in := input{operand: operand, isFile: isFile, fromStdin: fromStdin}
	if opts.Decode {
		return decode(a, c, opts, in, log)
	}
	return encode(a, c, opts, in, log)
}

type input struct {
	operand   string
	isFile    bool
	fromStdin bool
}

// bytes returns the operand's content: the file, stdin, or the literal itself.
func (in input) bytes(a *app.App) ([]byte, error) {
	switch {
	case in.isFile:
		return fileio.ReadBinary(in.operand)
	case in.fromStdin:
		return fileio.ReadAll(a.InReader)
	default:
		return []byte(in.operand), nil
	}
}

// text returns the operand as text. Files and stdin are read as latin-1.
func (in input) text(a *app.App) (string, error) {
	switch {
	case in.isFile:
		return fileio.ReadText(in.operand)
	case in.fromStdin:
		data, err := fileio.ReadAll(a.InReader)
		if err != nil {
			return "", err
		}
		return fileio.Latin1(data)
	default:
		return in.operand, nil
	}
}

// symbols returns the encoded operand. Files and stdin hold UTF-8 symbols.
func (in input) symbols(a *app.App) (string, error) {
	if in.isFile {
		return fileio.ReadSymbols(in.operand)
	}
	data, err := in.bytes(a)
	return string(data), err
}

func (o Options) validate(isFile, fromStdin bool) error {
	if o.Raw && !isFile && !fromStdin {
		return errors.New("--raw requires an existing file or - as operand")
	}
	if o.Raw && o.Decode && fromStdin && o.Output == "" {
		return errors.New("--raw requires --output when decoding from stdin")
	}
	if o.MsgPack && !o.Decode {
		return errors.New("--msgpack can only be used with --decode")
	}
	if o.Template && o.Decode {
		return errors.New("--template can only be used when encoding")
	}
	if o.Template && o.Raw {
		return errors.New("--template cannot be used with --raw")
	}
	return nil
}

func encode(a *app.App, c *codec.Codec, opts Options, in input, log *logrus.Entry) error {
	outPath := opts.Output
	var encoded string

	if opts.Raw {
		data, err := in.bytes(a)
		if err != nil {
			return err
		}
		log.WithField("bytes", len(data)).Debug("read binary input")
		var enc encoding.Encoder = c
		out, err := enc.Encode(data)
		if err != nil {
			return fmt.Errorf("unable to encode: %w", err)
		}
		encoded = string(out)
	} else {
		text, err := in.text(a)
		if err != nil {
			return err
		}
		if in.isFile || in.fromStdin {
			log.WithField("chars", len([]rune(text))).Debug("read text input")
		}
		if opts.Template {
			rendered, err := app.RenderTemplate([]byte(text))
			if err != nil {
				return err
			}
			text = string(rendered)
		}
		encoded = c.EncodeText(text)
	}

	if in.isFile && outPath == "" {
		outPath = fileio.EncodedName(in.operand)
	}
	if outPath != "" {
		if err := fileio.WriteFile(outPath, []byte(encoded)); err != nil {
			return err
		}
		log.WithField("output", outPath).Debug("wrote encoded symbols")
	}

	fmt.Fprintln(a.ColorableOut, encoded)
	return nil
}

func decode(a *app.App, c *codec.Codec, opts Options, in input, log *logrus.Entry) error {
	outPath := opts.Output
	symbols, err := in.symbols(a)
	if err != nil {
		return err
	}
	if in.isFile || in.fromStdin {
		// Files saved by editors or shell redirects end in a newline.
		symbols = trimNewline(symbols, c.Alphabet())
		if in.isFile && outPath == "" {
			outPath = fileio.DecodedName(in.operand)
		}
	}

	if opts.Raw || opts.MsgPack {
		var dec encoding.Decoder = c
		data, err := dec.Decode([]byte(symbols))
		if err != nil {
			return fmt.Errorf("unable to decode: %w", err)
		}
		if outPath != "" {
			if err := fileio.WriteFile(outPath, data); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"output": outPath, "bytes": len(data)}).Debug("wrote decoded bytes")
		}
		if opts.MsgPack {
			_, _ = a.ColorableOut.Write(a.FormatMsgPack(data))
			fmt.Fprintln(a.OutWriter)
			return nil
		}
		fmt.Fprintf(a.OutWriter, "Wrote %d bytes to %s.\n", len(data), outPath)
		return nil
	}

	text, err := c.DecodeText(symbols)
	if err != nil {
		if errors.Is(err, codec.ErrInvalidUTF8) {
			return fmt.Errorf("unable to decode: %w (use --raw with a file operand to keep binary output)", err)
		}
		return fmt.Errorf("unable to decode: %w", err)
	}
	if outPath != "" {
		if err := fileio.WriteText(outPath, text); err != nil {
			return fmt.Errorf("%w (use --raw with a file or - operand to keep the decoded bytes as they are)", err)
		}
		log.WithField("output", outPath).Debug("wrote decoded text")
	}

	fmt.Fprintln(a.OutWriter, text)
	return nil
}

// trimNewline drops a single trailing "\n" or "\r\n", unless either rune is
// a symbol of abc.
func trimNewline(symbols string, abc *alphabet.Alphabet) string {
	for _, r := range []rune{'\n', '\r'} {
		if _, ok := abc.Value(r); ok {
			return symbols
		}
	}
	if s, ok := strings.CutSuffix(symbols, "\r\n"); ok {
		return s
	}
	s, _ := strings.CutSuffix(symbols, "\n")
	return s
}

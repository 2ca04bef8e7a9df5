package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/birdayz/emojibytes/pkg/config"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	a := New()
	buf := bytes.NewBuffer(nil)
	a.OutWriter = buf
	a.ErrWriter = buf
	a.ColorableOut = buf
	a.Keyfmt.DisabledColor = true
	a.Log.SetOutput(buf)
	return a, buf
}

func TestAlphabetName(t *testing.T) {
	a, _ := newTestApp(t)
	require.Equal(t, "256", a.AlphabetName())

	a.Cfg.CurrentAlphabet = "4"
	require.Equal(t, "4", a.AlphabetName())

	a.Cfg.AlphabetOverride = "16"
	require.Equal(t, "16", a.AlphabetName())
}

func TestResolveAlphabet(t *testing.T) {
	a, _ := newTestApp(t)
	a.Cfg.Alphabets = []*config.Alphabet{
		{Name: "bits", Symbols: "01"},
		{Name: "broken", Symbols: "012"},
	}

	abc, err := a.ResolveAlphabet("2")
	require.NoError(t, err)
	require.Equal(t, "❌✔", abc.String())

	abc, err = a.ResolveAlphabet("bits")
	require.NoError(t, err)
	require.Equal(t, "01", abc.String())

	_, err = a.ResolveAlphabet("broken")
	require.ErrorContains(t, err, `alphabet "broken"`)

	_, err = a.ResolveAlphabet("nope")
	require.ErrorContains(t, err, "2, 4, 16, 256, bits, broken")
}

func TestNewCodec(t *testing.T) {
	a, _ := newTestApp(t)
	a.Cfg.AlphabetOverride = "16"

	c, err := a.NewCodec()
	require.NoError(t, err)
	require.Equal(t, 2, c.Alphabet().GroupsPerByte())
}

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate([]byte(`{{ "emoji" | upper }}-{{ add 1 2 }}`))
	require.NoError(t, err)
	require.Equal(t, "EMOJI-3", string(out))

	_, err = RenderTemplate([]byte(`{{ "unterminated" `))
	require.ErrorContains(t, err, "failed to parse go template")
}

func TestFormatMsgPack(t *testing.T) {
	a, buf := newTestApp(t)

	payload, err := msgpack.Marshal(map[string]any{"ok": true})
	require.NoError(t, err)
	out := a.FormatMsgPack(payload)
	require.Contains(t, string(out), `"ok": true`)
	require.Empty(t, buf.String())

	raw := []byte{0xc1}
	require.Equal(t, raw, a.FormatMsgPack(raw))
	require.Contains(t, buf.String(), "could not decode msgpack data")
}

func TestOutputFormat(t *testing.T) {
	var f OutputFormat
	require.NoError(t, f.Set("json"))
	require.Equal(t, OutputFormatJSON, f)
	require.Error(t, f.Set("yaml"))
}

package alphabet

// DefaultName is the built-in alphabet used when none is selected.
const DefaultName = "256"

// fruitBase is the first code point of the fruit emoji run (🍇) shared by
// the 4, 16 and 256 symbol alphabets.
const fruitBase = 0x1F347

// Binary returns the two symbol alphabet ❌ (0) and ✔ (1).
func Binary() *Alphabet {
	return MustNew([]rune{'❌', '✔'})
}

// Quaternary returns 🍇 🍈 🍉 🍊.
func Quaternary() *Alphabet {
	return MustNew(codePointRun(fruitBase, 4))
}

// Hex returns the first 16 symbols of the fruit run.
func Hex() *Alphabet {
	return MustNew(codePointRun(fruitBase, 16))
}

// Octet returns 256 consecutive code points starting at 🍇, one symbol per byte.
func Octet() *Alphabet {
	return MustNew(codePointRun(fruitBase, 256))
}

func codePointRun(start rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = start + rune(i)
	}
	return out
}

var builtins = []struct {
	name string
	new  func() *Alphabet
}{
	{"2", Binary},
	{"4", Quaternary},
	{"16", Hex},
	{"256", Octet},
}

// Builtin returns a fresh copy of the named built-in alphabet.
func Builtin(name string) (*Alphabet, bool) {
	for _, b := range builtins {
		if b.name == name {
			return b.new(), true
		}
	}
	return nil, false
}

// BuiltinNames lists the built-in alphabet names in ascending size.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.name)
	}
	return names
}

// IsBuiltin reports whether name is reserved by a built-in alphabet.
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}

package encoding

// Encoder turns raw bytes into their printable symbol form.
type Encoder interface {
	Encode([]byte) ([]byte, error)
}

// Decoder turns the printable symbol form back into raw bytes.
type Decoder interface {
	Decode([]byte) ([]byte, error)
}

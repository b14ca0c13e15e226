package stdsec

import "errors"

// passwordPad is the 32-byte Adobe padding string used to bring a password
// up to exactly 32 bytes (ISO 32000-1 §7.6.3.3, algorithm 2 step (a)).
var passwordPad = [32]byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

var errInvalidPassword = errors.New("stdsec: password is not representable in the PDF raw encoding")

// rawEncode converts a password to bytes using the PDF "raw" encoding: one
// byte per code unit, unchanged (ISO-8859-1). Code points outside the
// single-byte range cannot be represented and are rejected. Passwords are
// opaque bytes; they are never Unicode-normalized or otherwise
// reinterpreted as text, since doing so would make a password computed by
// one implementation fail to open a document encrypted by another.
func rawEncode(s string) ([]byte, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, errInvalidPassword
		}
		buf = append(buf, byte(r))
	}
	return buf, nil
}

// padPassword raw-encodes pw and pads or truncates it to exactly 32 bytes
// using passwordPad, per algorithm 2 step (a). padPassword("") equals
// passwordPad exactly.
func padPassword(pw string) ([32]byte, error) {
	var out [32]byte

	raw, err := rawEncode(pw)
	if err != nil {
		return out, err
	}

	n := copy(out[:], raw)
	copy(out[n:], passwordPad[:32-n])
	return out, nil
}

package stdsec

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func aes128Key() []byte {
	return []byte("0123456789abcdef") // 16 bytes
}

// AES payload length: ciphertext is always 16 + 16*ceil((len(plain)+1)/16)
// bytes, accounting for the IV and at least one byte of PKCS#7 padding.
func TestAESPayloadLengthFormula(t *testing.T) {
	for n := 0; n <= 40; n++ {
		plain := bytes.Repeat([]byte{0x42}, n)
		buf := append([]byte(nil), plain...)

		out, err := encryptPayload(aes128Key(), cipherAES, buf)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		want := 16 + 16*((n+1+15)/16)
		if len(out) != want {
			t.Fatalf("n=%d: len(out) = %d, want %d", n, len(out), want)
		}
	}
}

func TestAESRoundTrip(t *testing.T) {
	key := aes128Key()
	plain := []byte("the quick brown fox jumps over the lazy dog")

	buf := append([]byte(nil), plain...)
	enc, err := encryptPayload(key, cipherAES, buf)
	if err != nil {
		t.Fatal(err)
	}

	dec, err := decryptPayload(key, cipherAES, enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec, plain) {
		t.Fatalf("round trip = %q, want %q", dec, plain)
	}
}

func TestAESRoundTripEmpty(t *testing.T) {
	key := aes128Key()
	enc, err := encryptPayload(key, cipherAES, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 32 {
		t.Fatalf("len(enc) = %d, want 32 (IV + one padded block)", len(enc))
	}
	dec, err := decryptPayload(key, cipherAES, enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(dec) != 0 {
		t.Fatalf("dec = %q, want empty", dec)
	}
}

func TestAESRejectsShortCiphertext(t *testing.T) {
	_, err := decryptPayload(aes128Key(), cipherAES, make([]byte, 16))
	if err == nil {
		t.Fatal("expected an error for ciphertext shorter than IV+one block")
	}
}

func TestAESRejectsNonBlockMultiple(t *testing.T) {
	_, err := decryptPayload(aes128Key(), cipherAES, make([]byte, 33))
	if err == nil {
		t.Fatal("expected an error for a length that isn't a block multiple")
	}
}

func TestAESRejectsBadPadding(t *testing.T) {
	key := aes128Key()
	buf := append([]byte(nil), []byte("hello")...)
	enc, err := encryptPayload(key, cipherAES, buf)
	if err != nil {
		t.Fatal(err)
	}
	// Flipping the last byte of the block before the final one (here the
	// IV) flips the decrypted padding byte: 0x0B becomes 0xF4.
	enc[len(enc)-17] ^= 0xFF // corrupt the padding byte
	if _, err := decryptPayload(key, cipherAES, enc); err == nil {
		t.Fatal("expected an error for corrupted PKCS#7 padding")
	}
}

// RC4 payload encryption is an involution at the object-key level too.
func TestRC4PayloadInvolution(t *testing.T) {
	key := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}
	plain := []byte("payload bytes for an rc4 object")

	buf := append([]byte(nil), plain...)
	enc, err := encryptPayload(key, cipherRC4, buf)
	if err != nil {
		t.Fatal(err)
	}
	encCopy := append([]byte(nil), enc...)

	dec, err := decryptPayload(key, cipherRC4, encCopy)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec, plain) {
		t.Fatalf("round trip = %q, want %q", dec, plain)
	}
}

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closeBuffer) Close() error {
	c.closed = true
	return nil
}

func TestAESStreamRoundTrip(t *testing.T) {
	key := aes128Key()
	plain := strings.Repeat("stream me some bytes, please", 5)

	var sink closeBuffer
	w, err := encryptStream(key, cipherAES, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(w, strings.NewReader(plain)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !sink.closed {
		t.Fatal("expected the underlying writer to be closed")
	}

	r, err := decryptStream(key, cipherAES, bytes.NewReader(sink.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != plain {
		t.Fatalf("stream round trip = %q, want %q", got, plain)
	}
}

func TestRC4StreamRoundTrip(t *testing.T) {
	key := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	plain := "small rc4 stream payload"

	var sink closeBuffer
	w, err := encryptStream(key, cipherRC4, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, plain); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := decryptStream(key, cipherRC4, bytes.NewReader(sink.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != plain {
		t.Fatalf("stream round trip = %q, want %q", got, plain)
	}
}

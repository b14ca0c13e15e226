package stdsec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"go.pdfcrypt.dev/stdsec/internal/arcfour"
)

// encryptPayload encrypts buf in place (RC4) or returns a fresh buffer
// (AES) using key as the per-object key, implementing the encryption half
// of Algorithm 1. For AES, the result is IV || AES-CBC(data padded with
// PKCS#7), always at least 16 bytes longer than buf.
func encryptPayload(key []byte, kind cipherKind, buf []byte) ([]byte, error) {
	switch kind {
	case cipherRC4:
		arcfour.XORKeyStream(buf, buf, key)
		return buf, nil
	case cipherAES:
		return aesCBCEncrypt(key, buf)
	default:
		panic("stdsec: unknown cipher kind")
	}
}

// decryptPayload is the inverse of encryptPayload.
func decryptPayload(key []byte, kind cipherKind, buf []byte) ([]byte, error) {
	switch kind {
	case cipherRC4:
		arcfour.XORKeyStream(buf, buf, key)
		return buf, nil
	case cipherAES:
		return aesCBCDecrypt(key, buf)
	default:
		panic("stdsec: unknown cipher kind")
	}
}

// aesCBCEncrypt generates a fresh random IV and returns IV || ciphertext,
// where ciphertext is buf padded to a block boundary with PKCS#7 and
// encrypted under AES-128-CBC.
func aesCBCEncrypt(key, buf []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	nPad := aes.BlockSize - len(buf)%aes.BlockSize
	out := make([]byte, aes.BlockSize+len(buf)+nPad)

	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	copy(out[aes.BlockSize:], buf)
	for i := aes.BlockSize + len(buf); i < len(out); i++ {
		out[i] = byte(nPad)
	}

	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(out[aes.BlockSize:], out[aes.BlockSize:])
	return out, nil
}

// aesCBCDecrypt reads the leading 16-byte IV from buf, decrypts the
// remainder under AES-128-CBC, and strips PKCS#7 padding.
func aesCBCDecrypt(key, buf []byte) ([]byte, error) {
	if len(buf) < 2*aes.BlockSize || len(buf)%aes.BlockSize != 0 {
		return nil, &MalformedCiphertextError{Reason: "ciphertext too short or not a block multiple"}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := buf[:aes.BlockSize]
	body := buf[aes.BlockSize:]

	cbc := cipher.NewCBCDecrypter(block, iv)
	cbc.CryptBlocks(body, body)

	nPad := int(body[len(body)-1])
	if nPad < 1 || nPad > aes.BlockSize || nPad > len(body) {
		return nil, &MalformedCiphertextError{Reason: "invalid PKCS#7 padding"}
	}
	for _, b := range body[len(body)-nPad:] {
		if int(b) != nPad {
			return nil, &MalformedCiphertextError{Reason: "invalid PKCS#7 padding"}
		}
	}
	return body[:len(body)-nPad], nil
}

// encryptStream returns a WriteCloser that encrypts everything written to
// it and forwards the ciphertext to w, using key as the per-object key.
// For AES, the random IV is written first, before any plaintext is seen.
func encryptStream(key []byte, kind cipherKind, w io.WriteCloser) (io.WriteCloser, error) {
	switch kind {
	case cipherRC4:
		return &rc4WriteCloser{c: arcfour.New(key), w: w}, nil
	case cipherAES:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		iv := make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(rand.Reader, iv); err != nil {
			return nil, err
		}
		if _, err := w.Write(iv); err != nil {
			return nil, err
		}
		return &cbcEncryptWriter{
			w:   w,
			cbc: cipher.NewCBCEncrypter(block, iv),
			buf: make([]byte, 0, aes.BlockSize),
		}, nil
	default:
		panic("stdsec: unknown cipher kind")
	}
}

// decryptStream returns a Reader that decrypts data read from r, using key
// as the per-object key.
func decryptStream(key []byte, kind cipherKind, r io.Reader) (io.Reader, error) {
	switch kind {
	case cipherRC4:
		return &rc4Reader{c: arcfour.New(key), r: r}, nil
	case cipherAES:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		iv := make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(r, iv); err != nil {
			return nil, err
		}
		return &cbcDecryptReader{
			cbc: cipher.NewCBCDecrypter(block, iv),
			r:   r,
		}, nil
	default:
		panic("stdsec: unknown cipher kind")
	}
}

type rc4WriteCloser struct {
	c *arcfour.Cipher
	w io.WriteCloser
}

func (rw *rc4WriteCloser) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	rw.c.Transform(buf, p)
	return rw.w.Write(buf)
}

func (rw *rc4WriteCloser) Close() error { return rw.w.Close() }

type rc4Reader struct {
	c *arcfour.Cipher
	r io.Reader
}

func (rr *rc4Reader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if n > 0 {
		rr.c.Transform(p[:n], p[:n])
	}
	return n, err
}

// cbcEncryptWriter buffers writes up to one AES block, encrypting and
// forwarding each full block as it fills, and PKCS#7-padding the final
// partial block on Close.
type cbcEncryptWriter struct {
	w   io.WriteCloser
	cbc cipher.BlockMode
	buf []byte // 0 <= len(buf) < aes.BlockSize between calls
}

func (w *cbcEncryptWriter) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		room := aes.BlockSize - len(w.buf)
		k := room
		if k > len(p) {
			k = len(p)
		}
		w.buf = append(w.buf, p[:k]...)
		p = p[k:]
		n += k

		if len(w.buf) == aes.BlockSize {
			w.cbc.CryptBlocks(w.buf, w.buf)
			if _, err := w.w.Write(w.buf); err != nil {
				return n, err
			}
			w.buf = w.buf[:0]
		}
	}
	return n, nil
}

func (w *cbcEncryptWriter) Close() error {
	nPad := aes.BlockSize - len(w.buf)
	last := make([]byte, aes.BlockSize)
	copy(last, w.buf)
	for i := len(w.buf); i < aes.BlockSize; i++ {
		last[i] = byte(nPad)
	}

	w.cbc.CryptBlocks(last, last)
	if _, err := w.w.Write(last); err != nil {
		return err
	}
	return w.w.Close()
}

// cbcDecryptReader decrypts a CBC-encrypted, PKCS#7-padded stream one
// block at a time, holding back the final block until EOF so padding can
// be stripped.
type cbcDecryptReader struct {
	cbc     cipher.BlockMode
	r       io.Reader
	pending []byte // decrypted bytes not yet returned
	held    []byte // last ciphertext block, not yet known to be final
	atEOF   bool
}

func (r *cbcDecryptReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.atEOF {
			return 0, io.EOF
		}

		block := make([]byte, aes.BlockSize)
		if _, err := io.ReadFull(r.r, block); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				if r.held == nil {
					return 0, &MalformedCiphertextError{Reason: "truncated AES stream"}
				}
				r.atEOF = true
				r.cbc.CryptBlocks(r.held, r.held)
				nPad := int(r.held[len(r.held)-1])
				if nPad < 1 || nPad > aes.BlockSize {
					return 0, &MalformedCiphertextError{Reason: "invalid PKCS#7 padding"}
				}
				for _, b := range r.held[len(r.held)-nPad:] {
					if int(b) != nPad {
						return 0, &MalformedCiphertextError{Reason: "invalid PKCS#7 padding"}
					}
				}
				r.pending = r.held[:len(r.held)-nPad]
				break
			}
			return 0, err
		}

		if r.held != nil {
			r.cbc.CryptBlocks(r.held, r.held)
			r.pending = r.held
		}
		r.held = block
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

package stdsec

import "crypto/md5"

// aesSalt is appended to the per-object key derivation input only when the
// object is protected with AES; it must never be added for RC4, since
// doing so would change the derived RC4 key and break interoperability
// with every other implementation of the RC4 variant.
var aesSalt = [4]byte{0x73, 0x41, 0x6C, 0x54} // ASCII "sAlT"

// objectKey derives the per-object cipher key for an indirect object with
// the given number and generation, following Algorithm 1 of ISO 32000-1
// §7.6.2. The returned key has length min(len(fileKey)+5, 16) and is used
// directly as the RC4 key, or as the AES-128 key (already exactly 16 bytes
// whenever len(fileKey) == 16, which the min-clamp guarantees).
func objectKey(fileKey []byte, objNum, gen uint32, cipher cipherKind) []byte {
	h := md5.New()
	h.Write(fileKey)
	h.Write([]byte{
		byte(objNum), byte(objNum >> 8), byte(objNum >> 16),
		byte(gen), byte(gen >> 8),
	})
	if cipher == cipherAES {
		h.Write(aesSalt[:])
	}

	n := len(fileKey) + 5
	if n > 16 {
		n = 16
	}
	return h.Sum(nil)[:n]
}

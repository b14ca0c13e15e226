package stdsec

import (
	"bytes"
	"crypto/md5"

	"go.pdfcrypt.dev/stdsec/internal/arcfour"
)

// computeFileKey implements Algorithm 2 (ISO 32000-1 §7.6.3.3): derive the
// document's file encryption key from the padded user password, the O
// entry, the permission word, and the document ID.
func computeFileKey(paddedUser [32]byte, o [32]byte, p uint32, id DocumentID, r revisionParams) []byte {
	h := md5.New()
	h.Write(paddedUser[:])
	h.Write(o[:])
	h.Write([]byte{byte(p), byte(p >> 8), byte(p >> 16), byte(p >> 24)})
	h.Write(id)
	digest := h.Sum(nil)

	if r.strong {
		for i := 0; i < 50; i++ {
			sum := md5.Sum(digest[:r.keyLen])
			digest = sum[:]
		}
	}

	return digest[:r.keyLen]
}

// computeOwnerKey implements Algorithm 3 (ISO 32000-1 §7.6.3.4): derive the
// O entry from the padded user and owner passwords.
func computeOwnerKey(paddedUser, paddedOwner [32]byte, r revisionParams) [32]byte {
	sum := md5.Sum(paddedOwner[:])
	if r.strong {
		for i := 0; i < 50; i++ {
			sum = md5.Sum(sum[:r.keyLen])
		}
	}
	rc4key := sum[:r.keyLen]

	var o [32]byte
	arcfour.XORKeyStream(o[:], paddedUser[:], rc4key)

	if r.strong {
		key := make([]byte, len(rc4key))
		for i := byte(1); i <= 19; i++ {
			for j := range key {
				key[j] = rc4key[j] ^ i
			}
			arcfour.XORKeyStream(o[:], o[:], key)
		}
	}

	return o
}

// computeUserKey implements Algorithm 4 (R2) and Algorithm 5 (R3/R4) of
// ISO 32000-1 §7.6.3.4: derive the U entry from the file encryption key and
// (for R3/R4) the document ID.
func computeUserKey(fileKey []byte, id DocumentID, r revisionParams) [32]byte {
	var u [32]byte

	if !r.strong {
		arcfour.XORKeyStream(u[:], passwordPad[:], fileKey)
		return u
	}

	h := md5.New()
	h.Write(passwordPad[:])
	h.Write(id)
	digest := h.Sum(nil) // 16 bytes

	var chained [16]byte
	arcfour.XORKeyStream(chained[:], digest, fileKey)

	key := make([]byte, len(fileKey))
	for i := byte(1); i <= 19; i++ {
		for j := range key {
			key[j] = fileKey[j] ^ i
		}
		arcfour.XORKeyStream(chained[:], chained[:], key)
	}

	copy(u[:16], chained[:])
	// u[16:32] stays zero: "arbitrary padding" per the spec, only the
	// first 16 bytes are deterministic for R3/R4.
	return u
}

// recoverPaddedUserFromOwner inverts the RC4 chain of Algorithm 3, given a
// candidate owner password, recovering what should be the padded user
// password if the candidate is correct (Algorithm 7 steps (a)-(b)).
func recoverPaddedUserFromOwner(o [32]byte, paddedCandidateOwner [32]byte, r revisionParams) [32]byte {
	sum := md5.Sum(paddedCandidateOwner[:])
	if r.strong {
		for i := 0; i < 50; i++ {
			sum = md5.Sum(sum[:r.keyLen])
		}
	}
	rc4key := sum[:r.keyLen]

	buf := o

	if !r.strong {
		arcfour.XORKeyStream(buf[:], buf[:], rc4key)
		return buf
	}

	key := make([]byte, len(rc4key))
	for i := 19; i >= 1; i-- {
		for j := range key {
			key[j] = rc4key[j] ^ byte(i)
		}
		arcfour.XORKeyStream(buf[:], buf[:], key)
	}
	arcfour.XORKeyStream(buf[:], buf[:], rc4key)
	return buf
}

// userKeyMatches compares a freshly computed U value against the one
// stored in the encryption dictionary, using the comparison window
// Algorithm 6 specifies: all 32 bytes for R2, only the first 16 for R3/R4
// (the remaining 16 bytes of a strong U are unspecified padding).
func userKeyMatches(got, want [32]byte, r revisionParams) bool {
	if r.strong {
		return bytes.Equal(got[:16], want[:16])
	}
	return bytes.Equal(got[:], want[:])
}

package stdsec

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the structural failure kinds from spec §7.
// They are unexported; each exported error type below returns one of them
// from Unwrap.
var (
	errUnknownEncryption    = errors.New("unknown encryption filter or version")
	errUnsupportedRevision  = errors.New("unsupported standard security handler revision")
	errUnsupportedCryptFilt = errors.New("unsupported crypt filter")
	errMalformedCiphertext  = errors.New("malformed ciphertext")
)

// UnknownEncryptionError is returned when the encryption dictionary's
// /Filter is not /Standard, or /V is outside {1,2,3,4}.
type UnknownEncryptionError struct {
	Filter string
	V      int
}

func (e *UnknownEncryptionError) Error() string {
	return fmt.Sprintf("%s: Filter=%q V=%d", errUnknownEncryption, e.Filter, e.V)
}

func (e *UnknownEncryptionError) Unwrap() error { return errUnknownEncryption }

// UnsupportedRevisionError is returned when /R is outside {2,3,4}.
type UnsupportedRevisionError struct {
	R int
}

func (e *UnsupportedRevisionError) Error() string {
	return fmt.Sprintf("%s: R=%d", errUnsupportedRevision, e.R)
}

func (e *UnsupportedRevisionError) Unwrap() error { return errUnsupportedRevision }

// UnsupportedCryptFilterError is returned for R=4 documents whose /StdCF
// crypt filter does not have CFM in {V2, AESV2} and AuthEvent /DocOpen.
type UnsupportedCryptFilterError struct {
	CFM       string
	AuthEvent string
}

func (e *UnsupportedCryptFilterError) Error() string {
	return fmt.Sprintf("%s: CFM=%q AuthEvent=%q", errUnsupportedCryptFilt, e.CFM, e.AuthEvent)
}

func (e *UnsupportedCryptFilterError) Unwrap() error { return errUnsupportedCryptFilt }

// MalformedCiphertextError is returned when an AES payload is too short,
// not a multiple of the block size, or carries invalid PKCS#7 padding.
type MalformedCiphertextError struct {
	Reason string
}

func (e *MalformedCiphertextError) Error() string {
	return fmt.Sprintf("%s: %s", errMalformedCiphertext, e.Reason)
}

func (e *MalformedCiphertextError) Unwrap() error { return errMalformedCiphertext }

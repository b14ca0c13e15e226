package stdsec

import "io"

// Session holds the mutable cipher state for one document: the derived
// file key, the parsed or freshly-built encryption dictionary, and whether
// the caller has authenticated as the document's owner. A Session is not
// safe for concurrent use; each document being processed concurrently
// needs its own Session.
type Session struct {
	id DocumentID
	r  revisionParams
	d  EncryptionDictionary

	fileKey             []byte
	hasOwnerPermissions bool
}

// PrepareEncryption builds a brand-new, pre-authenticated Session for
// writing a document. The caller always ends up authenticated as the
// owner, since preparing encryption requires knowing both passwords.
//
// If pw.Owner is empty, it is set equal to pw.User (both may be empty:
// this is accepted, and yields a document that opens with no password at
// all).
func PrepareEncryption(pw Passwords, perm Perm, level SecurityLevel, id DocumentID) (*Session, error) {
	r, ok := revisionFor(level)
	if !ok {
		return nil, &UnsupportedRevisionError{}
	}

	if level == Rc4_40 && !perm.canR2() {
		r, _ = revisionFor(Rc4_128)
	}

	owner := pw.Owner
	if owner == "" {
		owner = pw.User
	}

	paddedUser, err := padPassword(pw.User)
	if err != nil {
		return nil, err
	}
	paddedOwner, err := padPassword(owner)
	if err != nil {
		return nil, err
	}

	p := uint32(perm.toP(r.strong))

	o := computeOwnerKey(paddedUser, paddedOwner, r)
	fileKey := computeFileKey(paddedUser, o, p, id, r)
	u := computeUserKey(fileKey, id, r)

	d := EncryptionDictionary{
		Filter: "Standard",
		V:      r.V,
		R:      r.R,
		Length: r.lengthP,
		O:      o,
		U:      u,
		P:      p,
	}
	if level == Aes_128 {
		d.StdCFCipherIsAES = true
		d.StdCFLength = r.keyLen
		d.StmF, d.StrF = "StdCF", "StdCF"
		d.AuthEvent = "DocOpen"
	}

	return &Session{
		id:                  id,
		r:                   r,
		d:                   d,
		fileKey:             fileKey,
		hasOwnerPermissions: true,
	}, nil
}

// OpenSession builds a Session from a previously parsed encryption
// dictionary and document ID, for reading an existing document. The
// returned Session cannot encrypt or decrypt anything until Validate
// succeeds: no password has been checked yet, so no file key is known.
func OpenSession(d EncryptionDictionary, id DocumentID) (*Session, error) {
	if d.Filter != "Standard" || d.V < 1 || d.V > 4 {
		return nil, &UnknownEncryptionError{Filter: d.Filter, V: d.V}
	}

	var r revisionParams
	switch d.R {
	case 2:
		r = revisionParams{V: 1, R: 2, keyLen: 5, strong: false, cipher: cipherRC4}
	case 3:
		r = revisionParams{V: 2, R: 3, keyLen: 16, strong: true, cipher: cipherRC4}
	case 4:
		if d.StmF != "StdCF" || d.StrF != "StdCF" || d.AuthEvent != "DocOpen" || d.StdCFLength != 16 {
			return nil, &UnsupportedCryptFilterError{AuthEvent: d.AuthEvent}
		}
		cipher := cipherRC4
		if d.StdCFCipherIsAES {
			cipher = cipherAES
		}
		r = revisionParams{V: 4, R: 4, keyLen: 16, strong: true, cipher: cipher}
	default:
		return nil, &UnsupportedRevisionError{R: d.R}
	}

	return &Session{id: id, r: r, d: d}, nil
}

// Validate classifies the supplied password as the document's owner
// password, its user password, or neither: it first checks whether the
// password recovers the padded user password through the owner-key
// inversion, then falls back to a direct check against the user key. A
// successful match derives and stores the file key, after which
// EncryptBytes/DecryptBytes and their streaming counterparts become
// usable.
func (s *Session) Validate(password string) (AuthResult, error) {
	padded, err := padPassword(password)
	if err != nil {
		return Invalid, nil
	}

	if recoveredUser := recoverPaddedUserFromOwner(s.d.O, padded, s.r); s.tryUser(recoveredUser) {
		s.hasOwnerPermissions = true
		return OwnerPassword, nil
	}

	if s.tryUser(padded) {
		s.hasOwnerPermissions = false
		return UserPassword, nil
	}

	return Invalid, nil
}

// tryUser attempts to authenticate with a (possibly recovered) padded user
// password, storing the resulting file key on success.
func (s *Session) tryUser(paddedUser [32]byte) bool {
	fileKey := computeFileKey(paddedUser, s.d.O, s.d.P, s.id, s.r)
	u := computeUserKey(fileKey, s.id, s.r)
	if !userKeyMatches(u, s.d.U, s.r) {
		return false
	}
	s.fileKey = fileKey
	return true
}

// HasOwnerPermissions reports whether the most recent successful Validate
// call authenticated as the document owner.
func (s *Session) HasOwnerPermissions() bool { return s.hasOwnerPermissions }

// Permissions decodes the dictionary's raw /P word into the typed
// permission bit set for the session's revision.
func (s *Session) Permissions() Perm { return permFromP(s.d.P, s.r.strong) }

// Dictionary returns the encryption dictionary this session was built
// from, or built during PrepareEncryption. The security handler's own
// object is written verbatim from these fields, without encryption.
func (s *Session) Dictionary() EncryptionDictionary { return s.d }

// requireFileKey panics if no file key has been derived yet. An attempt to
// encrypt or decrypt before a successful Validate (or before
// PrepareEncryption) is a programming error, not a recoverable condition.
func (s *Session) requireFileKey() {
	if s.fileKey == nil {
		panic("stdsec: no file key set; call Validate (or PrepareEncryption) first")
	}
}

// EncryptBytes encrypts a string or whole stream payload belonging to the
// indirect object (objNum, gen), deriving the per-object key on the fly.
// Zero-length payloads are returned unchanged, without touching any cipher
// state.
func (s *Session) EncryptBytes(objNum, gen uint32, buf []byte) ([]byte, error) {
	s.requireFileKey()
	if len(buf) == 0 {
		return buf, nil
	}
	key := objectKey(s.fileKey, objNum, gen, s.r.cipher)
	return encryptPayload(key, s.r.cipher, buf)
}

// DecryptBytes is the inverse of EncryptBytes.
func (s *Session) DecryptBytes(objNum, gen uint32, buf []byte) ([]byte, error) {
	s.requireFileKey()
	if len(buf) == 0 {
		return buf, nil
	}
	key := objectKey(s.fileKey, objNum, gen, s.r.cipher)
	return decryptPayload(key, s.r.cipher, buf)
}

// EncryptStream wraps w so that everything written to the result is
// encrypted for the indirect object (objNum, gen) before reaching w.
func (s *Session) EncryptStream(objNum, gen uint32, w io.WriteCloser) (io.WriteCloser, error) {
	s.requireFileKey()
	key := objectKey(s.fileKey, objNum, gen, s.r.cipher)
	return encryptStream(key, s.r.cipher, w)
}

// DecryptStream wraps r so that everything read from the result has been
// decrypted for the indirect object (objNum, gen).
func (s *Session) DecryptStream(objNum, gen uint32, r io.Reader) (io.Reader, error) {
	s.requireFileKey()
	key := objectKey(s.fileKey, objNum, gen, s.r.cipher)
	return decryptStream(key, s.r.cipher, r)
}

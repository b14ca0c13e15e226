// Package stdsec implements the PDF standard security handler (ISO 32000-1
// §7.6) for algorithm revisions R2, R3, and R4: 40-bit RC4, 128-bit RC4, and
// 128-bit AES-CBC ("AESV2"). It derives document encryption material from a
// pair of passwords, validates a supplied password against a previously
// encrypted document, and encrypts or decrypts the string and stream
// payloads of indirect PDF objects.
//
// Parsing, the object model, file I/O, and any higher-level document API
// are external collaborators. This package only consumes them through the
// narrow interfaces in object.go: it never reads or writes a PDF file
// itself.
//
// Public-key handlers, revisions R5/R6 (AES-256), and signature handlers
// are out of scope.
package stdsec

// SecurityLevel selects the algorithm revision and cipher PrepareEncryption
// should use for a new document.
type SecurityLevel int

const (
	// None disables encryption.
	None SecurityLevel = iota

	// Rc4_40 selects V=1, R=2, 40-bit RC4.
	Rc4_40

	// Rc4_128 selects V=2, R=3, 128-bit RC4.
	Rc4_128

	// Aes_128 selects V=4, R=4, 128-bit AES-CBC via the /StdCF crypt filter.
	Aes_128
)

func (lvl SecurityLevel) String() string {
	switch lvl {
	case None:
		return "None"
	case Rc4_40:
		return "RC4-40"
	case Rc4_128:
		return "RC4-128"
	case Aes_128:
		return "AES-128"
	default:
		return "unknown security level"
	}
}

// cipherKind is the concrete stream/block cipher a crypt filter selects.
type cipherKind int

const (
	cipherRC4 cipherKind = iota
	cipherAES
)

// revisionParams bundles the fixed constants that depend only on the
// chosen SecurityLevel: the key length in bytes, whether the "strong"
// (50-round rehash, 20-round RC4 chain) key derivation applies, the
// dictionary /V and /R values, and the payload cipher.
type revisionParams struct {
	V       int
	R       int
	keyLen  int // file key length in bytes: 5 (R2) or 16 (R3/R4)
	strong  bool
	cipher  cipherKind
	lengthP int // /Length in bits, 0 if the dict omits it (R4)
}

func revisionFor(level SecurityLevel) (revisionParams, bool) {
	switch level {
	case Rc4_40:
		return revisionParams{V: 1, R: 2, keyLen: 5, strong: false, cipher: cipherRC4, lengthP: 40}, true
	case Rc4_128:
		return revisionParams{V: 2, R: 3, keyLen: 16, strong: true, cipher: cipherRC4, lengthP: 128}, true
	case Aes_128:
		return revisionParams{V: 4, R: 4, keyLen: 16, strong: true, cipher: cipherAES}, true
	default:
		return revisionParams{}, false
	}
}

// Passwords holds the user and owner passwords used to derive a document's
// encryption material. Neither field is ever persisted: PrepareEncryption
// only stores their derived O/U/file-key material.
type Passwords struct {
	User  string
	Owner string
}

// DocumentID is the first element of a PDF file's /ID array, treated as an
// opaque byte string (conventionally, but not necessarily, 16 bytes).
type DocumentID []byte

// AuthResult classifies a password supplied to Session.Validate.
type AuthResult int

const (
	// Invalid means the password matched neither the owner nor the user
	// password recorded in the encryption dictionary.
	Invalid AuthResult = iota

	// UserPassword means the password matched the document's user
	// password but not its owner password. When the owner password was
	// left empty it equals the user password, which then yields
	// OwnerPassword instead.
	UserPassword

	// OwnerPassword means the password matched the document's owner
	// password. hasOwnerPermissions is set in this case.
	OwnerPassword
)

func (r AuthResult) String() string {
	switch r {
	case Invalid:
		return "Invalid"
	case UserPassword:
		return "UserPassword"
	case OwnerPassword:
		return "OwnerPassword"
	default:
		return "unknown auth result"
	}
}

// EncryptionDictionary is the parsed or to-be-written contents of a PDF
// /Encrypt dictionary, restricted to the fields the standard security
// handler at R2-R4 defines.
type EncryptionDictionary struct {
	Filter string // always "Standard"
	V      int
	R      int
	Length int // top-level key length in bits; present for V=1 (40) and V=2 (128), omitted for V=4
	O      [32]byte
	U      [32]byte
	P      uint32

	// The following describe the /CF/StdCF crypt filter dictionary and are
	// only meaningful, and only ever set, for V=4.
	StdCFCipherIsAES bool // CFM: false = V2 (RC4), true = AESV2
	StdCFLength      int  // /CF/StdCF/Length in bytes (16 for AESV2/V2 at R4)
	StmF, StrF       string
	AuthEvent        string // must be "DocOpen" for V=4
	EncryptMetadata  *bool  // nil means "omit the entry" (defaults to true)
}

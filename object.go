package stdsec

// This file defines the narrow object-model interface the crypt driver
// consumes. Parsing, the full PDF object model, and file I/O are external
// collaborators; the types below are only rich enough to describe what the
// driver needs to walk and to let external code adapt its own object
// representation onto them.

// Reference identifies one indirect object by number and generation.
type Reference struct {
	Num uint32
	Gen uint32
}

// Name is a PDF name object, e.g. "XRef" or "StdCF".
type Name string

// String is a PDF string object. The crypt driver handles it through a
// pointer (*String) so it can rewrite Bytes in place as it walks the object
// graph.
type String struct {
	Bytes []byte
}

// Array is a PDF array object.
type Array []Object

// Dict is a PDF dictionary object.
type Dict map[Name]Object

// Stream is a PDF stream object: a dictionary plus a raw byte payload.
// Stream is always the direct value of an indirect object in a well-formed
// PDF file; it does not appear nested inside another object's value.
type Stream struct {
	Dict Dict
	Data []byte
}

// Object is any of Name, Integer, Boolean, *String, Array, Dict, or
// *Stream. There is no closed sum type for object values in Go, so this is
// documentation, not an enforced constraint; the crypt driver's type
// switch treats every other dynamic type as an opaque leaf it leaves
// untouched (numbers, booleans, null).
type Object any

// Integer is a PDF integer object.
type Integer int64

// Boolean is a PDF boolean object.
type Boolean bool

// IndirectObject pairs an indirect object's identity with its value, the
// unit the crypt driver's traversal operates on.
type IndirectObject struct {
	Ref   Reference
	Value Object
}

// crypter is the single per-object operation the driver needs from a
// Session: encrypt or decrypt a byte payload belonging to (ref.Num,
// ref.Gen). EncryptBytes and DecryptBytes both satisfy it.
type crypter func(objNum, gen uint32, buf []byte) ([]byte, error)

// EncryptDocument walks every indirect object in objs except encryptRef
// (the security handler's own object, which is always written verbatim,
// never encrypted) and encrypts its string and stream payloads in place
// using session's per-object keys.
func EncryptDocument(session *Session, objs []IndirectObject, encryptRef Reference) error {
	return walkDocument(objs, encryptRef, session.EncryptBytes)
}

// DecryptDocument is the inverse of EncryptDocument.
func DecryptDocument(session *Session, objs []IndirectObject, encryptRef Reference) error {
	return walkDocument(objs, encryptRef, session.DecryptBytes)
}

func walkDocument(objs []IndirectObject, encryptRef Reference, c crypter) error {
	for _, obj := range objs {
		if obj.Ref == encryptRef {
			continue
		}
		if _, err := walkValue(obj.Ref, obj.Value, c); err != nil {
			return err
		}
	}
	return nil
}

// walkValue applies c to every string and stream payload reachable from v,
// recursing into dictionaries and arrays. Payloads are rewritten in place
// inside the reference types Dict/Array/*String/*Stream, and v itself is
// returned; walkDocument ignores the return value.
func walkValue(ref Reference, v Object, c crypter) (Object, error) {
	switch val := v.(type) {
	case *String:
		if len(val.Bytes) == 0 {
			return val, nil
		}
		out, err := c(ref.Num, ref.Gen, val.Bytes)
		if err != nil {
			return nil, err
		}
		val.Bytes = out
		return val, nil

	case Dict:
		if name, ok := val["Type"].(Name); ok && name == "XRef" {
			// Cross-reference streams must stay readable before any
			// password has been authenticated, so they are never encrypted.
			return val, nil
		}
		for k, entry := range val {
			newEntry, err := walkValue(ref, entry, c)
			if err != nil {
				return nil, err
			}
			val[k] = newEntry
		}
		return val, nil

	case Array:
		for i, entry := range val {
			newEntry, err := walkValue(ref, entry, c)
			if err != nil {
				return nil, err
			}
			val[i] = newEntry
		}
		return val, nil

	case *Stream:
		if name, ok := val.Dict["Type"].(Name); ok && name == "XRef" {
			return val, nil
		}
		if len(val.Data) > 0 {
			out, err := c(ref.Num, ref.Gen, val.Data)
			if err != nil {
				return nil, err
			}
			val.Data = out
		}
		if _, err := walkValue(ref, val.Dict, c); err != nil {
			return nil, err
		}
		return val, nil

	default:
		// Names, integers, booleans, null, and anything else: opaque
		// leaves the driver never transforms.
		return v, nil
	}
}

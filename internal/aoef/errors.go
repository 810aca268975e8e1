package aoef

import "fmt"

// MissingReferenceError reports a record that points at an id with no
// corresponding entry in the document.
type MissingReferenceError struct {
	Referencing string // kind of the record holding the dangling reference
	Kind        string // kind of the entity that could not be resolved
	ID          string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("aoef: %s references unknown %s %q", e.Referencing, e.Kind, e.ID)
}

func missingRef(referencing, kind string, id any) *MissingReferenceError {
	return &MissingReferenceError{Referencing: referencing, Kind: kind, ID: fmt.Sprint(id)}
}

// UnsupportedTypeError reports a collection kind the codec has no adapter
// for, or a document whose kind differs from the one the caller expected.
type UnsupportedTypeError struct {
	Type     string
	Expected string // empty unless the caller asked for a specific kind
}

func (e *UnsupportedTypeError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("aoef: document holds %q, expected %q", e.Type, e.Expected)
	}
	return fmt.Sprintf("aoef: unsupported collection type %q", e.Type)
}

// VersionMismatchError reports a document written by an incompatible format
// version.
type VersionMismatchError struct {
	Got  string
	Want string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("aoef: document version %q, supported version is %q", e.Got, e.Want)
}

// MalformedDocumentError reports a document that is not structurally valid,
// independent of any reference resolution.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("aoef: malformed document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("aoef: malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Package types holds the identifiers, value types, and error taxonomy
// shared by every layer of the registry core: the tree model, the text
// codecs, and the dispatcher.
package types

// ErrKind classifies an Error so callers can branch on intent rather than
// on message text, following the registry server's own error-reporter
// taxonomy (spec.md §7).
type ErrKind int

const (
	ErrKindNotFound            ErrKind = iota // FILE_NOT_FOUND
	ErrKindNoMoreItems                        // NO_MORE_ITEMS
	ErrKindKeyDeleted                         // KEY_DELETED
	ErrKindAccessDenied                       // ACCESS_DENIED
	ErrKindChildMustBeVolatile                // CHILD_MUST_BE_VOLATILE
	ErrKindOutOfMemory                        // OUTOFMEMORY
	ErrKindNotRegistryFile                    // NOT_REGISTRY_FILE
	ErrKindFormat                             // malformed request/line, not fatal to the caller
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "FILE_NOT_FOUND"
	case ErrKindNoMoreItems:
		return "NO_MORE_ITEMS"
	case ErrKindKeyDeleted:
		return "KEY_DELETED"
	case ErrKindAccessDenied:
		return "ACCESS_DENIED"
	case ErrKindChildMustBeVolatile:
		return "CHILD_MUST_BE_VOLATILE"
	case ErrKindOutOfMemory:
		return "OUTOFMEMORY"
	case ErrKindNotRegistryFile:
		return "NOT_REGISTRY_FILE"
	case ErrKindFormat:
		return "FORMAT_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is a typed error with an optional underlying cause, the same
// sentinel-plus-kind shape the teacher library uses for its own errors.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind alone, ignoring Msg/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a message.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind, wrapping an underlying cause.
func Wrap(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Sentinels for the common cases, analogous to the Windows error codes
// the original server reported via set_error().
var (
	ErrNotFound            = New(ErrKindNotFound, "not found")
	ErrNoMoreItems         = New(ErrKindNoMoreItems, "no more items")
	ErrKeyDeleted          = New(ErrKindKeyDeleted, "key has been deleted")
	ErrAccessDenied        = New(ErrKindAccessDenied, "access denied")
	ErrChildMustBeVolatile = New(ErrKindChildMustBeVolatile, "child of a volatile key must be volatile")
	ErrOutOfMemory         = New(ErrKindOutOfMemory, "out of memory")
	ErrNotRegistryFile     = New(ErrKindNotRegistryFile, "not a registry file")
	ErrFormat              = New(ErrKindFormat, "malformed line")
)

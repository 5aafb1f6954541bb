package crucible

import "errors"

// TypeTag identifies one candidate value type a Field may accept. The engine
// dispatches on tags instead of concrete collection types so that a single
// validation algorithm can serve structurally different backing collections.
type TypeTag int

const (
	TypeString TypeTag = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDateTime
	TypeList
	TypeObject
)

func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeList:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// ErrKeysUnsupported is returned by Translator.Keys for collection kinds that
// have no enumerable key set.
var ErrKeysUnsupported = errors.New("crucible: key enumeration not supported by this collection kind")

// Translator adapts one backing collection representation (a parsed JSON
// tree, a string-keyed dictionary, a registered native record) to the uniform
// capability set the engine is written against. The engine never learns which
// representation it is operating on.
//
// Cast results use one canonical Go type per tag: TypeString -> string,
// TypeInt -> int64, TypeFloat -> float64, TypeBool -> bool,
// TypeDateTime -> time.Time, TypeList -> []any, and TypeObject -> the
// translator-native sub-collection. Cast reports failure through its bool
// result and never through a panic or an error; the engine treats a failed
// cast as an expected outcome, not an exception.
//
// Implementations must be stateless: all per-call data lives in the coll
// argument so one Translator value can be shared across schemas.
type Translator interface {
	// Cast attempts to produce the value stored under key as the canonical
	// type for tag, applying only casts the backing collection natively
	// supports.
	Cast(coll any, key string, tag TypeTag) (any, bool)

	// IsEmptyOrNull reports whether the value under key is absent, null, or
	// empty in the collection's native sense.
	IsEmptyOrNull(coll any, key string) bool

	// ContainsKey reports whether key is present in the collection.
	ContainsKey(coll any, key string) bool

	// Keys enumerates every key present in the collection. Collection kinds
	// without an enumerable key set return ErrKeysUnsupported.
	Keys(coll any) ([]string, error)

	// Insert stores value under key and returns the collection reflecting the
	// insertion. Implementations may mutate coll in place or return a copy;
	// only the returned collection is guaranteed to contain the value.
	Insert(coll any, key string, value any) (any, error)

	// DisplayString renders the value stored under key as text, used for
	// format constraints and messages.
	DisplayString(coll any, key string) string

	// TypeDisplayName maps a tag to the collection kind's user-facing name
	// for that type, used in schema self-description and cast errors.
	TypeDisplayName(tag TypeTag) string
}

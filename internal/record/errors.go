package record

import "errors"

var (
	// ErrColumnOutOfRange reports a column index outside the schema. This is
	// a caller bug, as opposed to ErrIndirectOutOfRange which points at bad
	// data produced upstream.
	ErrColumnOutOfRange = errors.New("record: column index out of range")

	// ErrIndirectOutOfRange reports a string reference whose offset+length
	// exceeds the indirect buffer.
	ErrIndirectOutOfRange = errors.New("record: indirect reference out of range")

	// ErrNullValue reports a typed read of a column that is NULL in the
	// current row. Check IsNull first or switch to a nullable-aware path.
	ErrNullValue = errors.New("record: column value is null")

	ErrSchemaMismatch = errors.New("record: schema/values mismatch")
	ErrNullNotAllowed = errors.New("record: null value for non-nullable column")
	ErrTypeMismatch   = errors.New("record: value type mismatch")
)

package record

import (
	"fmt"
	"math"

	"github.com/tuannm99/novascan/internal/alias/bx"
)

// BatchBuilder encodes rows into the fixed/indirect buffer pair consumed
// by RowResult.
//
// Layout per row slot: one fixed-width field per column in schema order
// (strings as an 8-byte offset + 8-byte length into the indirect buffer),
// then ceil(numCols/8) null bitmap bytes when the schema has any nullable
// column. NULL columns keep their slot space so every row has the same
// width.
type BatchBuilder struct {
	schema   Schema
	rowData  []byte
	indirect []byte
	numRows  int
}

func NewBatchBuilder(s Schema) *BatchBuilder {
	return &BatchBuilder{schema: s}
}

func (b *BatchBuilder) NumRows() int { return b.numRows }

// Batch returns the encoded row buffer and indirect buffer. The builder
// retains them; append more rows only before handing the buffers out.
func (b *BatchBuilder) Batch() (rowData, indirectData []byte) {
	return b.rowData, b.indirect
}

// AddRow appends one row. A nil value marks NULL and is only legal for
// nullable columns.
func (b *BatchBuilder) AddRow(values []any) error {
	nc := b.schema.NumCols()
	if len(values) != nc {
		return fmt.Errorf("%w: got %d values for %d columns", ErrSchemaMismatch, len(values), nc)
	}

	slot := make([]byte, b.schema.RowSize())
	var bitmap []byte
	if b.schema.HasNullableCols() {
		bitmap = slot[len(slot)-b.schema.BitmapBytes():]
	}

	off := 0
	for i, col := range b.schema.Cols {
		v := values[i]
		if v == nil {
			if !col.Nullable {
				return fmt.Errorf("%w: column %q", ErrNullNotAllowed, col.Name)
			}
			bitmap[i/8] |= 1 << (uint(i) & 7) // bit=1 => NULL
			off += col.Type.Size()
			continue
		}
		if err := b.putField(slot, off, col, v); err != nil {
			return err
		}
		off += col.Type.Size()
	}

	b.rowData = append(b.rowData, slot...)
	b.numRows++
	return nil
}

func (b *BatchBuilder) putField(slot []byte, off int, col Column, v any) error {
	switch col.Type {
	case ColInt8:
		x, ok := asInt(v, math.MinInt8, math.MaxInt8)
		if !ok {
			return typeErr(col, v)
		}
		slot[off] = byte(x)

	case ColUint8:
		x, ok := asUint(v, math.MaxUint8)
		if !ok {
			return typeErr(col, v)
		}
		slot[off] = byte(x)

	case ColInt16:
		x, ok := asInt(v, math.MinInt16, math.MaxInt16)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU16At(slot, off, uint16(x))

	case ColUint16:
		x, ok := asUint(v, math.MaxUint16)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU16At(slot, off, uint16(x))

	case ColInt32:
		x, ok := asInt(v, math.MinInt32, math.MaxInt32)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU32At(slot, off, uint32(x))

	case ColUint32:
		x, ok := asUint(v, math.MaxUint32)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU32At(slot, off, uint32(x))

	case ColInt64:
		x, ok := asInt(v, math.MinInt64, math.MaxInt64)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU64At(slot, off, uint64(x))

	case ColUint64:
		x, ok := asUint(v, math.MaxUint64)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU64At(slot, off, x)

	case ColString:
		str, ok := v.(string)
		if !ok {
			return typeErr(col, v)
		}
		bx.PutU64At(slot, off, uint64(len(b.indirect)))
		bx.PutU64At(slot, off+8, uint64(len(str)))
		b.indirect = append(b.indirect, str...)

	default:
		return fmt.Errorf("%w: column %q has unsupported type %d", ErrTypeMismatch, col.Name, uint8(col.Type))
	}
	return nil
}

func typeErr(col Column, v any) error {
	return fmt.Errorf("%w: column %q (%s) cannot hold %T value %v",
		ErrTypeMismatch, col.Name, col.Type, v, v)
}

// ---- small helpers to accept multiple numeric types on encode ----

func asInt(v any, lo, hi int64) (int64, bool) {
	var x int64
	switch t := v.(type) {
	case int:
		x = int64(t)
	case int8:
		x = int64(t)
	case int16:
		x = int64(t)
	case int32:
		x = int64(t)
	case int64:
		x = t
	default:
		return 0, false
	}
	if x < lo || x > hi {
		return 0, false
	}
	return x, true
}

func asUint(v any, hi uint64) (uint64, bool) {
	var x uint64
	switch t := v.(type) {
	case uint:
		x = uint64(t)
	case uint8:
		x = uint64(t)
	case uint16:
		x = uint64(t)
	case uint32:
		x = uint64(t)
	case uint64:
		x = t
	case int:
		if t < 0 {
			return 0, false
		}
		x = uint64(t)
	default:
		return 0, false
	}
	if x > hi {
		return 0, false
	}
	return x, true
}

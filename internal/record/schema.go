package record

import "strings"

type ColumnType uint8

const (
	ColInt8 ColumnType = iota
	ColUint8
	ColInt16
	ColUint16
	ColInt32
	ColUint32
	ColInt64
	ColUint64
	ColString // UTF-8, stored in the indirect buffer
)

// Size returns the number of bytes the type occupies inside a row slot.
// String fields do not store their payload inline: the slot holds an 8-byte
// offset plus an 8-byte length into the batch's indirect buffer.
func (t ColumnType) Size() int {
	switch t {
	case ColInt8, ColUint8:
		return 1
	case ColInt16, ColUint16:
		return 2
	case ColInt32, ColUint32:
		return 4
	case ColInt64, ColUint64:
		return 8
	case ColString:
		return 16
	default:
		return 0
	}
}

func (t ColumnType) String() string {
	switch t {
	case ColInt8:
		return "int8"
	case ColUint8:
		return "uint8"
	case ColInt16:
		return "int16"
	case ColUint16:
		return "uint16"
	case ColInt32:
		return "int32"
	case ColUint32:
		return "uint32"
	case ColInt64:
		return "int64"
	case ColUint64:
		return "uint64"
	case ColString:
		return "string"
	default:
		return "unknown"
	}
}

type Column struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Nullable bool       `json:"nullable"`
}

// Schema describes the columns of one scan batch: order, count and
// nullability are fixed for the lifetime of a decoding session.
type Schema struct {
	Cols []Column `json:"cols"`
}

func (s Schema) NumCols() int { return len(s.Cols) }

func (s Schema) Column(i int) Column { return s.Cols[i] }

func (s Schema) HasNullableCols() bool {
	for _, c := range s.Cols {
		if c.Nullable {
			return true
		}
	}
	return false
}

// BitmapBytes returns the length of the per-row null bitmap, one bit per
// column rounded up to whole bytes.
func (s Schema) BitmapBytes() int { return (len(s.Cols) + 7) / 8 }

// RowSize returns the width of one row slot: the sum of the fixed column
// widths, plus the trailing null bitmap when any column is nullable. This
// is the cursor stride; the offset table's synthetic bitmap slot is derived
// from the same widths, so the two can never disagree.
func (s Schema) RowSize() int {
	n := 0
	for _, c := range s.Cols {
		n += c.Type.Size()
	}
	if s.HasNullableCols() {
		n += s.BitmapBytes()
	}
	return n
}

func (s Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema[")
	for i, c := range s.Cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.Name)
		sb.WriteString(" ")
		sb.WriteString(c.Type.String())
		if c.Nullable {
			sb.WriteString(" NULL")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

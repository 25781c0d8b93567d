package record

import (
	"fmt"
	"strings"
)

func (r *RowResult) String() string {
	return fmt.Sprintf("RowResult index: %d, size: %d, schema: %s",
		r.index, r.rowSize, r.schema)
}

// DebugString renders every column of the current row as "name: {value}",
// with NULL markers for absent values. Diagnostics only: decode problems
// are rendered inline rather than returned, so a partially bad row still
// prints.
func (r *RowResult) DebugString() string {
	var sb strings.Builder
	sb.WriteString(r.String())
	for i := 0; i < r.schema.NumCols(); i++ {
		col := r.schema.Column(i)
		sb.WriteString(", ")
		sb.WriteString(col.Name)
		sb.WriteString(": {")
		if null, _ := r.IsNull(i); null {
			sb.WriteString("NULL")
		} else {
			sb.WriteString(r.renderColumn(i, col.Type))
		}
		sb.WriteString("}")
	}
	return sb.String()
}

func (r *RowResult) renderColumn(columnIndex int, t ColumnType) string {
	var v any
	var err error
	switch t {
	case ColInt8:
		v, err = r.GetInt8(columnIndex)
	case ColUint8:
		v, err = r.GetUint8(columnIndex)
	case ColInt16:
		v, err = r.GetInt16(columnIndex)
	case ColUint16:
		v, err = r.GetUint16(columnIndex)
	case ColInt32:
		v, err = r.GetInt32(columnIndex)
	case ColUint32:
		v, err = r.GetUint32(columnIndex)
	case ColInt64:
		v, err = r.GetInt64(columnIndex)
	case ColUint64:
		v, err = r.GetUint64(columnIndex)
	case ColString:
		v, err = r.GetString(columnIndex)
	default:
		return fmt.Sprintf("?type=%d", uint8(t))
	}
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return fmt.Sprint(v)
}

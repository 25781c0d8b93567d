package record

import (
	"fmt"

	"github.com/tuannm99/novascan/internal/alias/bx"
)

const indexResetLocation = -1

// RowResult is a repositionable view over one row of a scan batch. It
// borrows rowData and indirectData from the batch that produced them and
// must not outlive them; it never copies or frees either buffer.
//
// A RowResult is not safe for concurrent use: repositioning mutates cursor
// state read by every getter, and any value obtained from a getter is only
// valid until the next reposition. Callers that need to keep a value across
// rows must copy it out themselves.
type RowResult struct {
	schema       Schema
	rowData      []byte
	indirectData []byte

	rowSize       int
	columnOffsets []int

	// cursor state
	index  int
	offset int
	nulls  bitSet
}

// NewRowResult prepares a row view over the given batch buffers without
// copying them. The per-column offset table is precomputed here by
// accumulating fixed widths in schema order; when the schema has nullable
// columns one extra slot marks where the null bitmap starts inside a row
// slot.
func NewRowResult(s Schema, rowData, indirectData []byte) *RowResult {
	size := s.NumCols()
	if s.HasNullableCols() {
		size++
	}
	if size == 0 {
		size = 1 // empty schema still gets the single zero offset
	}
	offsets := make([]int, size)
	cur := 0
	for i := 1; i < size; i++ {
		prev := s.Column(i - 1).Type.Size()
		offsets[i] = cur + prev
		cur += prev
	}
	return &RowResult{
		schema:        s,
		rowData:       rowData,
		indirectData:  indirectData,
		rowSize:       s.RowSize(),
		columnOffsets: offsets,
		index:         indexResetLocation,
	}
}

// advancePointer repositions the cursor at the next row. Meant to be driven
// by RowResultIterator.
func (r *RowResult) advancePointer() {
	r.advancePointerTo(r.index + 1)
}

func (r *RowResult) resetPointer() {
	r.advancePointerTo(indexResetLocation)
}

// advancePointerTo repositions the cursor at rowIndex and, when the schema
// has nullable columns, decodes that row's null bitmap. The row index is
// not checked against the batch row count; the batch owner knows how many
// rows the buffers hold.
func (r *RowResult) advancePointerTo(rowIndex int) {
	r.index = rowIndex
	r.offset = r.rowSize * rowIndex
	if rowIndex == indexResetLocation {
		r.nulls = nil
		return
	}
	if r.schema.HasNullableCols() {
		start := r.fieldOffset(r.schema.NumCols())
		r.nulls = toBitSet(r.rowData, start, r.schema.NumCols())
	}
}

// fieldOffset returns the absolute byte offset of a column field inside
// rowData. Index NumCols addresses the null bitmap slot.
func (r *RowResult) fieldOffset(columnIndex int) int {
	return r.offset + r.columnOffsets[columnIndex]
}

func (r *RowResult) checkValidColumn(columnIndex int) error {
	if columnIndex < 0 || columnIndex >= r.schema.NumCols() {
		return fmt.Errorf("%w: %d out of %d", ErrColumnOutOfRange, columnIndex, r.schema.NumCols())
	}
	return nil
}

func (r *RowResult) checkNull(columnIndex int) error {
	if !r.schema.HasNullableCols() {
		// no nullable columns, no bitmap to consult
		return nil
	}
	if r.nulls.Get(columnIndex) {
		return fmt.Errorf("%w: column %d (%s)", ErrNullValue, columnIndex, r.schema.Column(columnIndex).Name)
	}
	return nil
}

func (r *RowResult) checkColumn(columnIndex int) error {
	if err := r.checkValidColumn(columnIndex); err != nil {
		return err
	}
	return r.checkNull(columnIndex)
}

// IsNull reports whether the column is NULL in the current row. Schemas
// without nullable columns answer false without consulting any bitmap.
func (r *RowResult) IsNull(columnIndex int) (bool, error) {
	if err := r.checkValidColumn(columnIndex); err != nil {
		return false, err
	}
	if r.nulls == nil {
		return false, nil
	}
	return r.nulls.Get(columnIndex), nil
}

func (r *RowResult) GetInt8(columnIndex int) (int8, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return int8(r.rowData[r.fieldOffset(columnIndex)]), nil
}

func (r *RowResult) GetUint8(columnIndex int) (uint8, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return r.rowData[r.fieldOffset(columnIndex)], nil
}

func (r *RowResult) GetInt16(columnIndex int) (int16, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.I16At(r.rowData, r.fieldOffset(columnIndex)), nil
}

func (r *RowResult) GetUint16(columnIndex int) (uint16, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.U16At(r.rowData, r.fieldOffset(columnIndex)), nil
}

func (r *RowResult) GetInt32(columnIndex int) (int32, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.I32At(r.rowData, r.fieldOffset(columnIndex)), nil
}

func (r *RowResult) GetUint32(columnIndex int) (uint32, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.U32At(r.rowData, r.fieldOffset(columnIndex)), nil
}

func (r *RowResult) GetInt64(columnIndex int) (int64, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.I64At(r.rowData, r.fieldOffset(columnIndex)), nil
}

func (r *RowResult) GetUint64(columnIndex int) (uint64, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return 0, err
	}
	return bx.U64At(r.rowData, r.fieldOffset(columnIndex)), nil
}

// GetString resolves a string column through the indirect buffer. The row
// slot holds an 8-byte unsigned offset followed by an 8-byte unsigned
// length; the payload bytes are copied out, so the returned string stays
// valid after the batch buffers are released.
func (r *RowResult) GetString(columnIndex int) (string, error) {
	if err := r.checkColumn(columnIndex); err != nil {
		return "", err
	}
	fo := r.fieldOffset(columnIndex)
	off := bx.U64At(r.rowData, fo)
	length := bx.U64At(r.rowData, fo+8)
	n := uint64(len(r.indirectData))
	if off > n || length > n-off {
		return "", fmt.Errorf("%w: offset=%d length=%d indirect size=%d",
			ErrIndirectOutOfRange, off, length, n)
	}
	return string(r.indirectData[off : off+length]), nil
}

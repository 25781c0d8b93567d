package record

// RowResultIterator walks the rows of one scan batch in increasing order.
// It owns the row count (the buffers carry no header or count of their
// own) and drives a single shared RowResult, so the row returned by Row is
// repositioned, not replaced, by each call to Next.
type RowResultIterator struct {
	numRows int
	row     *RowResult
}

func NewRowResultIterator(s Schema, numRows int, rowData, indirectData []byte) *RowResultIterator {
	return &RowResultIterator{
		numRows: numRows,
		row:     NewRowResult(s, rowData, indirectData),
	}
}

func (it *RowResultIterator) NumRows() int { return it.numRows }

// Next advances the cursor to the next row. It returns false once the
// batch is exhausted, leaving the cursor on the last row.
func (it *RowResultIterator) Next() bool {
	if it.row.index+1 >= it.numRows {
		return false
	}
	it.row.advancePointer()
	return true
}

// Row returns the shared RowResult positioned at the current row. Values
// read from it are invalidated by the next call to Next or Reset.
func (it *RowResultIterator) Row() *RowResult { return it.row }

// Reset rewinds the iterator to before the first row so the batch can be
// walked again.
func (it *RowResultIterator) Reset() { it.row.resetPointer() }

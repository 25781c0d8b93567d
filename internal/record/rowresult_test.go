package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novascan/internal/alias/bx"
)

// makeFixedSchema has no nullable columns, so rows carry no null bitmap.
func makeFixedSchema() Schema {
	return Schema{
		Cols: []Column{
			{Name: "id", Type: ColInt32},
			{Name: "count", Type: ColUint16},
			{Name: "total", Type: ColInt64},
			{Name: "flag", Type: ColUint8},
		},
	}
}

// makeNullableSchema is the 3-column shape used by the null bitmap tests:
// only the middle column is nullable.
func makeNullableSchema() Schema {
	return Schema{
		Cols: []Column{
			{Name: "a", Type: ColInt32},
			{Name: "b", Type: ColInt32, Nullable: true},
			{Name: "c", Type: ColInt64},
		},
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	schema := makeFixedSchema()
	b := NewBatchBuilder(schema)

	const numRows = 5
	for i := 0; i < numRows; i++ {
		err := b.AddRow([]any{
			int32(-100 * i),
			uint16(i * 7),
			int64(1e12 + int64(i)),
			uint8(200 + i),
		})
		require.NoError(t, err)
	}

	rowData, indirect := b.Batch()
	require.Len(t, rowData, numRows*schema.RowSize())

	row := NewRowResult(schema, rowData, indirect)
	for i := 0; i < numRows; i++ {
		row.advancePointerTo(i)

		id, err := row.GetInt32(0)
		require.NoError(t, err)
		require.Equal(t, int32(-100*i), id)

		count, err := row.GetUint16(1)
		require.NoError(t, err)
		require.Equal(t, uint16(i*7), count)

		total, err := row.GetInt64(2)
		require.NoError(t, err)
		require.Equal(t, int64(1e12+int64(i)), total)

		flag, err := row.GetUint8(3)
		require.NoError(t, err)
		require.Equal(t, uint8(200+i), flag)
	}
}

func TestAllTypesRoundTrip(t *testing.T) {
	schema := Schema{
		Cols: []Column{
			{Name: "i8", Type: ColInt8},
			{Name: "u8", Type: ColUint8},
			{Name: "i16", Type: ColInt16},
			{Name: "u16", Type: ColUint16},
			{Name: "i32", Type: ColInt32},
			{Name: "u32", Type: ColUint32},
			{Name: "i64", Type: ColInt64},
			{Name: "u64", Type: ColUint64},
			{Name: "s", Type: ColString},
		},
	}
	b := NewBatchBuilder(schema)
	err := b.AddRow([]any{
		int8(-8), uint8(250),
		int16(-1600), uint16(65000),
		int32(-320000), uint32(4e9),
		int64(-64e12), uint64(18_000_000_000_000_000_000),
		"novascan",
	})
	require.NoError(t, err)

	rowData, indirect := b.Batch()
	row := NewRowResult(schema, rowData, indirect)
	row.advancePointerTo(0)

	i8, err := row.GetInt8(0)
	require.NoError(t, err)
	require.Equal(t, int8(-8), i8)

	u8, err := row.GetUint8(1)
	require.NoError(t, err)
	require.Equal(t, uint8(250), u8)

	i16, err := row.GetInt16(2)
	require.NoError(t, err)
	require.Equal(t, int16(-1600), i16)

	u16, err := row.GetUint16(3)
	require.NoError(t, err)
	require.Equal(t, uint16(65000), u16)

	i32, err := row.GetInt32(4)
	require.NoError(t, err)
	require.Equal(t, int32(-320000), i32)

	u32, err := row.GetUint32(5)
	require.NoError(t, err)
	require.Equal(t, uint32(4e9), u32)

	i64, err := row.GetInt64(6)
	require.NoError(t, err)
	require.Equal(t, int64(-64e12), i64)

	u64, err := row.GetUint64(7)
	require.NoError(t, err)
	require.Equal(t, uint64(18_000_000_000_000_000_000), u64)

	s, err := row.GetString(8)
	require.NoError(t, err)
	require.Equal(t, "novascan", s)
}

func TestIsNullWithoutNullableColumns(t *testing.T) {
	schema := makeFixedSchema()

	// Garbage buffer: with no nullable columns there is no bitmap to
	// consult, so content must not matter.
	rowData := make([]byte, schema.RowSize())
	for i := range rowData {
		rowData[i] = 0xFF
	}

	row := NewRowResult(schema, rowData, nil)
	row.advancePointerTo(0)

	for i := 0; i < schema.NumCols(); i++ {
		null, err := row.IsNull(i)
		require.NoError(t, err)
		require.False(t, null)
	}
}

func TestNullBitmap(t *testing.T) {
	schema := makeNullableSchema()
	b := NewBatchBuilder(schema)
	require.NoError(t, b.AddRow([]any{int32(11), nil, int64(33)}))

	rowData, indirect := b.Batch()
	row := NewRowResult(schema, rowData, indirect)
	row.advancePointerTo(0)

	null, err := row.IsNull(1)
	require.NoError(t, err)
	require.True(t, null)

	_, err = row.GetInt32(1)
	require.ErrorIs(t, err, ErrNullValue)

	// neighbors decode normally
	a, err := row.GetInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(11), a)

	c, err := row.GetInt64(2)
	require.NoError(t, err)
	require.Equal(t, int64(33), c)

	for _, i := range []int{0, 2} {
		null, err := row.IsNull(i)
		require.NoError(t, err)
		require.False(t, null)
	}
}

func TestStringIndirection(t *testing.T) {
	schema := Schema{Cols: []Column{{Name: "word", Type: ColString}}}

	// Hand-built slot pointing into the middle of the indirect buffer:
	// offset 6, length 5 of "hello world" -> "world".
	indirect := []byte("hello world")
	rowData := make([]byte, schema.RowSize())
	bx.PutU64At(rowData, 0, 6)
	bx.PutU64At(rowData, 8, 5)

	row := NewRowResult(schema, rowData, indirect)
	row.advancePointerTo(0)

	s, err := row.GetString(0)
	require.NoError(t, err)
	require.Equal(t, "world", s)
}

func TestStringOutlivesBuffers(t *testing.T) {
	schema := Schema{Cols: []Column{{Name: "s", Type: ColString}}}
	b := NewBatchBuilder(schema)
	require.NoError(t, b.AddRow([]any{"keepme"}))

	rowData, indirect := b.Batch()
	row := NewRowResult(schema, rowData, indirect)
	row.advancePointerTo(0)

	s, err := row.GetString(0)
	require.NoError(t, err)

	// GetString copies out of the indirect buffer; clobbering it after the
	// read must not change the returned value.
	for i := range indirect {
		indirect[i] = 'x'
	}
	require.Equal(t, "keepme", s)
}

func TestColumnOutOfRange(t *testing.T) {
	schema := Schema{
		Cols: []Column{
			{Name: "a", Type: ColInt32},
			{Name: "b", Type: ColInt32},
		},
	}
	b := NewBatchBuilder(schema)
	require.NoError(t, b.AddRow([]any{int32(1), int32(2)}))
	rowData, indirect := b.Batch()

	row := NewRowResult(schema, rowData, indirect)

	t.Run("unpositioned", func(t *testing.T) {
		_, err := row.GetInt32(2)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
		_, err = row.IsNull(2)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
	})

	t.Run("positioned", func(t *testing.T) {
		row.advancePointerTo(0)
		_, err := row.GetInt32(2)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
		_, err = row.GetInt32(-1)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
	})
}

func TestIndirectOutOfRange(t *testing.T) {
	schema := Schema{Cols: []Column{{Name: "s", Type: ColString}}}

	indirect := []byte("short")
	rowData := make([]byte, schema.RowSize())

	t.Run("length past end", func(t *testing.T) {
		bx.PutU64At(rowData, 0, 2)
		bx.PutU64At(rowData, 8, 10)
		row := NewRowResult(schema, rowData, indirect)
		row.advancePointerTo(0)
		_, err := row.GetString(0)
		require.ErrorIs(t, err, ErrIndirectOutOfRange)
	})

	t.Run("offset past end", func(t *testing.T) {
		bx.PutU64At(rowData, 0, 100)
		bx.PutU64At(rowData, 8, 1)
		row := NewRowResult(schema, rowData, indirect)
		row.advancePointerTo(0)
		_, err := row.GetString(0)
		require.ErrorIs(t, err, ErrIndirectOutOfRange)
	})

	t.Run("overflowing offset+length", func(t *testing.T) {
		// offset+length wraps uint64; the bounds check must not be fooled.
		bx.PutU64At(rowData, 0, ^uint64(0)-1)
		bx.PutU64At(rowData, 8, 4)
		row := NewRowResult(schema, rowData, indirect)
		row.advancePointerTo(0)
		_, err := row.GetString(0)
		require.ErrorIs(t, err, ErrIndirectOutOfRange)
	})
}

func TestRepositionIdempotent(t *testing.T) {
	schema := makeNullableSchema()
	b := NewBatchBuilder(schema)
	require.NoError(t, b.AddRow([]any{int32(1), nil, int64(10)}))
	require.NoError(t, b.AddRow([]any{int32(2), int32(20), int64(20)}))

	rowData, indirect := b.Batch()
	row := NewRowResult(schema, rowData, indirect)

	for _, target := range []int{1, 0, 1} {
		row.advancePointerTo(target)
		first, err1 := row.GetInt32(0)
		null1, _ := row.IsNull(1)

		row.advancePointerTo(target)
		second, err2 := row.GetInt32(0)
		null2, _ := row.IsNull(1)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, first, second)
		require.Equal(t, null1, null2)
	}
}

func TestOffsetTable(t *testing.T) {
	t.Run("strictly increasing", func(t *testing.T) {
		for _, schema := range []Schema{
			makeFixedSchema(),
			makeNullableSchema(),
			{Cols: []Column{{Name: "s", Type: ColString}, {Name: "i", Type: ColInt8, Nullable: true}}},
		} {
			row := NewRowResult(schema, nil, nil)
			offsets := row.columnOffsets
			for i := 1; i < len(offsets); i++ {
				require.Greater(t, offsets[i], offsets[i-1], "schema %s", schema)
			}
		}
	})

	t.Run("bitmap slot and row stride agree", func(t *testing.T) {
		schema := makeNullableSchema()
		row := NewRowResult(schema, nil, nil)

		sum := 0
		for _, c := range schema.Cols {
			sum += c.Type.Size()
		}
		// the synthetic slot marks the bitmap start, and the stride is the
		// bitmap start plus the bitmap itself
		require.Equal(t, sum, row.columnOffsets[schema.NumCols()])
		require.Equal(t, sum+schema.BitmapBytes(), schema.RowSize())
		require.Equal(t, schema.RowSize(), row.rowSize)
	})

	t.Run("adjacent offsets differ by column width", func(t *testing.T) {
		schema := makeFixedSchema()
		row := NewRowResult(schema, nil, nil)
		for i := 0; i+1 < len(row.columnOffsets); i++ {
			require.Equal(t, schema.Column(i).Type.Size(),
				row.columnOffsets[i+1]-row.columnOffsets[i])
		}
	})

	t.Run("empty schema", func(t *testing.T) {
		row := NewRowResult(Schema{}, nil, nil)
		require.Equal(t, []int{0}, row.columnOffsets)
		require.Equal(t, 0, row.rowSize)
	})
}

func TestResetPointer(t *testing.T) {
	schema := makeNullableSchema()
	b := NewBatchBuilder(schema)
	require.NoError(t, b.AddRow([]any{int32(1), nil, int64(1)}))

	rowData, indirect := b.Batch()
	row := NewRowResult(schema, rowData, indirect)
	row.advancePointerTo(0)
	require.NotNil(t, row.nulls)

	row.resetPointer()
	require.Equal(t, indexResetLocation, row.index)
	require.Nil(t, row.nulls)
}

package scanwire

import (
	"github.com/tuannm99/novascan/internal/record"
	"github.com/tuannm99/novascan/internal/tablestore"
)

// Scan ops carried in Request.Op.
const (
	OpOpen   = "open"
	OpNext   = "next"
	OpClose  = "close"
	OpTables = "tables"
)

// Request is a single scan-protocol request.
type Request struct {
	ID        uint64 `json:"id"`
	Op        string `json:"op"`
	Table     string `json:"table,omitempty"`
	Scanner   string `json:"scanner,omitempty"`
	BatchSize int    `json:"batch_size,omitempty"`
}

// RowBatch carries one window of encoded rows: the fixed-width row buffer,
// the indirect buffer with the variable-length payloads, and the row count
// (the buffers themselves carry no count or framing).
type RowBatch struct {
	NumRows      int    `json:"num_rows"`
	RowData      []byte `json:"row_data,omitempty"`
	IndirectData []byte `json:"indirect_data,omitempty"`
	Codec        string `json:"codec,omitempty"`
}

// Response answers the request with the matching ID.
type Response struct {
	ID    uint64 `json:"id"`
	Error string `json:"error,omitempty"`

	// open
	Scanner string          `json:"scanner,omitempty"`
	Columns []record.Column `json:"columns,omitempty"`

	// next
	Batch *RowBatch `json:"batch,omitempty"`
	Done  bool      `json:"done,omitempty"`

	// tables
	Tables []tablestore.TableMeta `json:"tables,omitempty"`
}

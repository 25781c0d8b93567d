// Package tablestore keeps scan-servable tables in memory: rows are stored
// decoded and encoded into fixed/indirect batch buffers per served window.
package tablestore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tuannm99/novascan/internal/record"
)

var (
	ErrTableExists   = errors.New("tablestore: table already exists")
	ErrTableNotFound = errors.New("tablestore: table not found")
)

// TableMeta is the catalog view of one table.
type TableMeta struct {
	Name    string          `json:"name"`
	Columns []record.Column `json:"columns"`
	NumRows int             `json:"num_rows"`
}

// Table holds rows in insertion order.
type Table struct {
	Name   string
	Schema record.Schema

	mu   sync.RWMutex
	rows [][]any
}

// Append validates values against the schema and stores a copy of the row.
func (t *Table) Append(values []any) error {
	// run the row through a scratch encoder so bad rows are rejected at
	// write time, not when a scanner hits them
	if err := record.NewBatchBuilder(t.Schema).AddRow(values); err != nil {
		return err
	}
	row := make([]any, len(values))
	copy(row, values)

	t.mu.Lock()
	t.rows = append(t.rows, row)
	t.mu.Unlock()
	return nil
}

func (t *Table) NumRows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// NextBatch encodes up to limit rows starting at row index from. A zero
// numRows means the scan is past the end of the table.
func (t *Table) NextBatch(from, limit int) (numRows int, rowData, indirectData []byte, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if from >= len(t.rows) || limit <= 0 {
		return 0, nil, nil, nil
	}
	end := from + limit
	if end > len(t.rows) {
		end = len(t.rows)
	}

	b := record.NewBatchBuilder(t.Schema)
	for i, row := range t.rows[from:end] {
		if err := b.AddRow(row); err != nil {
			return 0, nil, nil, fmt.Errorf("tablestore: encode row %d of %q: %w", from+i, t.Name, err)
		}
	}
	rowData, indirectData = b.Batch()
	return b.NumRows(), rowData, indirectData, nil
}

func (t *Table) meta() TableMeta {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TableMeta{Name: t.Name, Columns: t.Schema.Cols, NumRows: len(t.rows)}
}

// Store is a named collection of tables, safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*Table)}
}

func (s *Store) CreateTable(name string, schema record.Schema) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tables[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrTableExists, name)
	}
	t := &Table{Name: name, Schema: schema}
	s.tables[name] = t
	return t, nil
}

func (s *Store) Table(name string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return t, nil
}

// Metas lists all tables sorted by name.
func (s *Store) Metas() []TableMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metas := make([]TableMeta, 0, len(s.tables))
	for _, t := range s.tables {
		metas = append(metas, t.meta())
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas
}

package scanclient

import (
	"context"
	"errors"

	"github.com/tuannm99/novascan/internal/record"
	"github.com/tuannm99/novascan/server/scanwire"
)

var ErrScannerClosed = errors.New("scanclient: scanner closed")

// Scanner streams one table's rows batch by batch. Use it like:
//
//	sc, _ := client.OpenScanner(ctx, "users", 0)
//	for sc.HasMore() {
//		it, err := sc.NextRows(ctx)
//		if err != nil { ... }
//		for it.Next() {
//			row := it.Row()
//			...
//		}
//	}
//
// Rows returned by an iterator alias that batch's buffers; copy values out
// before fetching the next batch if they must be retained.
type Scanner struct {
	client  *Client
	id      string
	schema  record.Schema
	hasMore bool
	closed  bool
}

// OpenScanner starts a scan over table. batchSize <= 0 lets the server
// pick its configured window.
func (c *Client) OpenScanner(ctx context.Context, table string, batchSize int) (*Scanner, error) {
	resp, err := c.call(ctx, scanwire.Request{
		Op:        scanwire.OpOpen,
		Table:     table,
		BatchSize: batchSize,
	})
	if err != nil {
		return nil, err
	}
	return &Scanner{
		client:  c,
		id:      resp.Scanner,
		schema:  record.Schema{Cols: resp.Columns},
		hasMore: true,
	}, nil
}

// Schema returns the column layout the server reported at open.
func (s *Scanner) Schema() record.Schema { return s.schema }

// HasMore reports whether another NextRows call can yield rows.
func (s *Scanner) HasMore() bool { return s.hasMore && !s.closed }

// NextRows fetches the next batch and returns an iterator over its rows.
// When the scan is exhausted it returns an empty iterator.
func (s *Scanner) NextRows(ctx context.Context) (*record.RowResultIterator, error) {
	if s.closed {
		return nil, ErrScannerClosed
	}
	if !s.hasMore {
		return record.NewRowResultIterator(s.schema, 0, nil, nil), nil
	}

	resp, err := s.client.call(ctx, scanwire.Request{
		Op:      scanwire.OpNext,
		Scanner: s.id,
	})
	if err != nil {
		return nil, err
	}
	if resp.Done {
		s.hasMore = false
	}
	if resp.Batch == nil {
		return record.NewRowResultIterator(s.schema, 0, nil, nil), nil
	}
	if err := resp.Batch.Decompress(); err != nil {
		return nil, err
	}
	return record.NewRowResultIterator(
		s.schema, resp.Batch.NumRows, resp.Batch.RowData, resp.Batch.IndirectData), nil
}

// Close releases the server-side scanner. Safe to call more than once; the
// server also drops exhausted scanners on its own.
func (s *Scanner) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.hasMore {
		// server already forgot this scanner
		return nil
	}
	_, err := s.client.call(ctx, scanwire.Request{
		Op:      scanwire.OpClose,
		Scanner: s.id,
	})
	return err
}

// Package scanclient is a synchronous client for the novascan wire
// protocol. It materializes scanned batches into record.RowResultIterator
// values, the typed row-decoding layer of this module.
package scanclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuannm99/novascan/internal/tablestore"
	"github.com/tuannm99/novascan/server/scanwire"
)

// Client is a simple synchronous client.
// It locks send/recv so concurrent calls serialize on the connection.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// SetRWTimeout sets a per-request read/write deadline.
// Useful to avoid hanging forever if the server dies.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ListTables returns the server's catalog.
func (c *Client) ListTables(ctx context.Context) ([]tablestore.TableMeta, error) {
	resp, err := c.call(ctx, scanwire.Request{Op: scanwire.OpTables})
	if err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// call sends one request and waits for its response, matching IDs.
func (c *Client) call(ctx context.Context, req scanwire.Request) (*scanwire.Response, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("scanclient: nil client")
	}

	req.ID = c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// Clear deadline after request so an idle connection doesn't expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if err := scanwire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp scanwire.Response
	if err := scanwire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}

	if resp.ID != req.ID {
		return nil, fmt.Errorf("scanclient: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// Prefer context deadline if present; otherwise use rwTimeout.
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}

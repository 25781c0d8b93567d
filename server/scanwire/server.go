package scanwire

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tuannm99/novascan/internal/tablestore"
)

// DefaultBatchSize is the per-Next row window when neither the server
// config nor the client request picks one.
const DefaultBatchSize = 1024

type ServerConfig struct {
	Addr      string
	BatchSize int
	Compress  bool
	Debug     bool
}

// Run listens on sc.Addr and serves scans until SIGINT/SIGTERM.
func Run(sc ServerConfig, store *tablestore.Store) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, ln, sc, store)
}

// Serve accepts connections on ln until ctx is done. Split out of Run so
// tests can drive an ephemeral listener.
func Serve(ctx context.Context, ln net.Listener, sc ServerConfig, store *tablestore.Store) error {
	log.Printf("novascan tcp server listening on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			log.Printf("accept: %v", err)
			continue
		}
		go handleConn(ctx, conn, sc, store)
	}
}

func handleConn(ctx context.Context, conn net.Conn, sc ServerConfig, store *tablestore.Store) {
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Time{})

	// scanners are session-scoped: they die with the connection
	scanners := make(map[string]*scanState)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req Request
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			return
		}

		resp := handleRequest(sc, store, scanners, req)
		if err := WriteFrame(conn, resp); err != nil {
			return
		}
	}
}

// scanState is the cursor of one open scanner: the table it walks, the next
// row to serve and the batch window size.
type scanState struct {
	table *tablestore.Table
	next  int
	batch int
}

func handleRequest(sc ServerConfig, store *tablestore.Store, scanners map[string]*scanState, req Request) Response {
	switch req.Op {
	case OpTables:
		return Response{ID: req.ID, Tables: store.Metas()}

	case OpOpen:
		tbl, err := store.Table(req.Table)
		if err != nil {
			return Response{ID: req.ID, Error: err.Error()}
		}
		batch := req.BatchSize
		if batch <= 0 {
			batch = sc.BatchSize
		}
		if batch <= 0 {
			batch = DefaultBatchSize
		}
		id := uuid.NewString()
		scanners[id] = &scanState{table: tbl, batch: batch}
		if sc.Debug {
			log.Printf("scanner %s opened on %q (batch=%d)", id, req.Table, batch)
		}
		return Response{ID: req.ID, Scanner: id, Columns: tbl.Schema.Cols}

	case OpNext:
		st, ok := scanners[req.Scanner]
		if !ok {
			return Response{ID: req.ID, Error: fmt.Sprintf("scanwire: unknown scanner %q", req.Scanner)}
		}
		n, rowData, indirect, err := st.table.NextBatch(st.next, st.batch)
		if err != nil {
			return Response{ID: req.ID, Error: err.Error()}
		}
		if n == 0 {
			delete(scanners, req.Scanner)
			return Response{ID: req.ID, Done: true}
		}
		st.next += n

		batch := &RowBatch{NumRows: n, RowData: rowData, IndirectData: indirect}
		if sc.Compress {
			batch.Compress()
		}
		done := st.next >= st.table.NumRows()
		if done {
			delete(scanners, req.Scanner)
		}
		if sc.Debug {
			log.Printf("scanner %s served %d rows (done=%v)", req.Scanner, n, done)
		}
		return Response{ID: req.ID, Batch: batch, Done: done}

	case OpClose:
		delete(scanners, req.Scanner)
		return Response{ID: req.ID}

	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("scanwire: unknown op %q", req.Op)}
	}
}

package scanwire

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Batch codecs carried in RowBatch.Codec.
const (
	CodecNone = ""
	CodecZstd = "zstd"
)

// compressThreshold: batches smaller than this ship raw, the zstd frame
// overhead isn't worth it.
const compressThreshold = 512

var (
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	zstdDec, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
)

// Compress replaces both buffers with their zstd form when the batch is
// large enough to be worth it. No-op on already-compressed batches.
func (b *RowBatch) Compress() {
	if b.Codec != CodecNone {
		return
	}
	if len(b.RowData)+len(b.IndirectData) < compressThreshold {
		return
	}
	b.RowData = zstdEnc.EncodeAll(b.RowData, nil)
	if len(b.IndirectData) > 0 {
		b.IndirectData = zstdEnc.EncodeAll(b.IndirectData, nil)
	}
	b.Codec = CodecZstd
}

// Decompress restores the raw buffers according to the batch codec.
func (b *RowBatch) Decompress() error {
	switch b.Codec {
	case CodecNone:
		return nil
	case CodecZstd:
		rowData, err := zstdDec.DecodeAll(b.RowData, nil)
		if err != nil {
			return fmt.Errorf("scanwire: bad row data: %w", err)
		}
		var indirect []byte
		if len(b.IndirectData) > 0 {
			indirect, err = zstdDec.DecodeAll(b.IndirectData, nil)
			if err != nil {
				return fmt.Errorf("scanwire: bad indirect data: %w", err)
			}
		}
		b.RowData, b.IndirectData = rowData, indirect
		b.Codec = CodecNone
		return nil
	default:
		return fmt.Errorf("scanwire: unknown batch codec %q", b.Codec)
	}
}

package record

// bitSet is a packed bit-per-column null map. It aliases the row buffer
// directly (the buffer is immutable), so decoding is a re-slice, not a copy.
type bitSet []byte

// toBitSet views nbits bits starting at buf[off].
func toBitSet(buf []byte, off, nbits int) bitSet {
	return bitSet(buf[off : off+(nbits+7)/8])
}

func (bs bitSet) Get(i int) bool {
	return bs[i/8]>>(uint(i)&7)&1 == 1
}

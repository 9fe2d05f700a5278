package capture

// The FPGA FIFO error flag is bit 0 of every sample byte, active low. When
// clear, bytes are not being read out of the FPGA FIFO quickly enough to
// avoid overflow, and the capture is compromised from that point on.
//
// Packing of each byte is:
//
//	[7:5] : Sample 0
//	[4:2] : Sample 1
//	[1]   : Unused
//	[0]   : FPGA FIFO error flag, active low
const fifoErrorMask = 0x01

// OverflowFlagged reports whether b carries the device FIFO overflow
// condition.
func OverflowFlagged(b byte) bool {
	return b&fifoErrorMask == 0
}

// Checker scans admitted chunks for the FIFO overflow flag. It is stateless
// apart from a running fault counter.
type Checker struct {
	faults uint64
}

// Scan checks every byte of chunk and returns the index of the first flagged
// byte, if any. All flagged bytes count toward Faults, so the rest of the
// chunk is still inspected after a hit.
func (c *Checker) Scan(chunk []byte) (first int, found bool) {
	for i, b := range chunk {
		if OverflowFlagged(b) {
			if !found {
				first, found = i, true
			}
			c.faults++
		}
	}
	return first, found
}

// Faults returns the total number of flagged bytes seen so far.
func (c *Checker) Faults() uint64 {
	return c.faults
}

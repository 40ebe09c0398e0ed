package types

import "fmt"

// Bytes is a byte count read from a kernel counter.
type Bytes uint64

var units = [...]string{"KB", "MB", "GB", "TB"}

// ToBytes converts a raw counter value to Bytes.
func ToBytes(v uint64) Bytes { return Bytes(v) }

// Humanized renders b with a 1024-based unit, e.g. "1.50 KB" or "512 B".
func (b Bytes) Humanized() string {
	if b < 1024 {
		return fmt.Sprintf("%d B", uint64(b))
	}
	v, i := float64(b)/1024, 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}

// MB returns b in mebibytes.
func (b Bytes) MB() float64 { return float64(b) / (1 << 20) }

// Delta returns b - prev, or 0 when the counter went backwards.
func (b Bytes) Delta(prev Bytes) Bytes {
	if b < prev {
		return 0
	}
	return b - prev
}

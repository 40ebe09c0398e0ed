package types

// Counters are cumulative per-process counters read in one go.
// All byte fields count since process start.
type Counters struct {
	ReadBytes  Bytes
	WriteBytes Bytes
	RSS        Bytes
	Threads    int32
}

package mem

// StackDump provides data for testing.
type StackDump struct {
	N      int
	Values [StackCapacity]uint32
}

// Dump stack data for testing, including slots above the top.
func (st *Stack) Dump() (d StackDump) {
	d.N = st.n
	d.Values = st.values
	return d
}

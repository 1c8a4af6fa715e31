package majority

// MajorityQuorum returns the minimum number of proposers, out of n, that constitutes a strict majority.
func MajorityQuorum(n int) int {
	if n <= 0 {
		return 0
	}
	return n/2 + 1
}

// HasQuorum returns true if support meets the quorum q. A quorum of 0 or less is always met.
func HasQuorum(support, q int) bool {
	return q <= 0 || support >= q
}

package batch

// workerCount derives the pool size from the machine's CPU count. Extraction
// is CPU-bound regex work, so the pool leaves headroom for the rest of the
// process on large machines and stays conservative on small ones.
func workerCount(cores int) int {
	switch {
	case cores >= 8:
		return minInt(cores-2, 6)
	case cores >= 4:
		return minInt(cores-1, 4)
	default:
		return maxInt(1, cores/2)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

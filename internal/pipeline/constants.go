package pipeline

// Plan capacities
const (
	defaultPlanCapacity = 4 // Initial capacity for branch slices
)

// Latency bounds
const (
	minLatency = 0  // A combinational branch
	maxLatency = 64 // Longest supported register chain in ticks
)

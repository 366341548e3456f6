// Tracks per-run activity: inspections per worker, item moves and worry peaks.

package sim

// Metrics aggregates statistics about one run for final reporting.
type Metrics struct {
	RoundsCompleted int     `json:"rounds_completed"`
	Inspections     []int64 `json:"inspections"` // per worker, by index
	ItemsMoved      int64   `json:"items_moved"` // deliveries, one per inspection
	SelfRoutes      int64   `json:"self_routes"` // deliveries back to the draining worker
	PeakWorry       int64   `json:"peak_worry"`  // largest worry level delivered after suppression
}

// NewMetrics returns zeroed metrics for the given number of workers.
func NewMetrics(workers int) *Metrics {
	return &Metrics{Inspections: make([]int64, workers)}
}

// TotalInspections sums inspections over all workers.
func (m *Metrics) TotalInspections() int64 {
	var total int64
	for _, n := range m.Inspections {
		total += n
	}
	return total
}

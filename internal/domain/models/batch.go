package models

import (
	"fmt"
	"math"
)

// BatchPlan splits TotalUnits into BatchCount() transactions of at most BatchSize units
type BatchPlan struct {
	TotalUnits uint64
	BatchSize  uint64
}

// NewBatchPlan validates and builds a plan
func NewBatchPlan(totalUnits, batchSize uint64) (BatchPlan, error) {
	if batchSize == 0 {
		return BatchPlan{}, fmt.Errorf("batch size must be positive")
	}
	if count := ceilDiv(totalUnits, batchSize); count > math.MaxInt {
		return BatchPlan{}, fmt.Errorf("%d units in batches of %d needs %d transactions, more than can be tracked", totalUnits, batchSize, count)
	}
	return BatchPlan{TotalUnits: totalUnits, BatchSize: batchSize}, nil
}

// BatchCount is ceil(TotalUnits / BatchSize)
func (p BatchPlan) BatchCount() int {
	if p.BatchSize == 0 {
		return 0
	}
	count := ceilDiv(p.TotalUnits, p.BatchSize)
	if count > math.MaxInt {
		return 0
	}
	return int(count)
}

func ceilDiv(n, d uint64) uint64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// UnitsFor returns the units carried by batch i. Every batch is full except a
// trailing remainder batch, so the plan never submits more than TotalUnits.
func (p BatchPlan) UnitsFor(i int) uint64 {
	if i < 0 || i >= p.BatchCount() {
		return 0
	}
	start := uint64(i) * p.BatchSize
	if start >= p.TotalUnits {
		return 0
	}
	return min(p.BatchSize, p.TotalUnits-start)
}

// BatchResult is recorded once a batch transaction is confirmed
type BatchResult struct {
	Index           int
	Units           uint64
	TransactionHash string
	BlockNumber     uint64
	Confirmed       bool
}

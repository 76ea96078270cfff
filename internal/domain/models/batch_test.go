package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchPlan(t *testing.T) {
	tests := []struct {
		name    string
		total   uint64
		size    uint64
		batches int
		units   []uint64
	}{
		{name: "exact multiple", total: 10000, size: 250, batches: 40},
		{name: "remainder", total: 600, size: 250, batches: 3, units: []uint64{250, 250, 100}},
		{name: "single partial", total: 7, size: 250, batches: 1, units: []uint64{7}},
		{name: "empty", total: 0, size: 250, batches: 0},
		{name: "size one", total: 3, size: 1, batches: 3, units: []uint64{1, 1, 1}},
		{name: "max total in one batch", total: math.MaxUint64, size: math.MaxUint64, batches: 1, units: []uint64{math.MaxUint64}},
		{name: "max total with remainder", total: math.MaxUint64, size: math.MaxUint64 - 1, batches: 2, units: []uint64{math.MaxUint64 - 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewBatchPlan(tt.total, tt.size)
			require.NoError(t, err)

			assert.Equal(t, tt.batches, plan.BatchCount())

			var sum uint64
			for i := 0; i < plan.BatchCount(); i++ {
				units := plan.UnitsFor(i)
				assert.LessOrEqual(t, units, tt.size)
				assert.Positive(t, units)
				if tt.units != nil {
					assert.Equal(t, tt.units[i], units, "batch %d", i)
				}
				sum += units
			}
			assert.Equal(t, tt.total, sum, "batches add up to the total")
			assert.Zero(t, plan.UnitsFor(plan.BatchCount()))
		})
	}
}

func TestNewBatchPlan_ZeroSize(t *testing.T) {
	_, err := NewBatchPlan(100, 0)
	assert.Error(t, err)
	assert.Zero(t, BatchPlan{TotalUnits: 100}.BatchCount())
}

func TestNewBatchPlan_TooManyBatches(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		size  uint64
	}{
		{name: "max total in pairs", total: math.MaxUint64, size: 2},
		{name: "max total one by one", total: math.MaxUint64, size: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBatchPlan(tt.total, tt.size)
			assert.ErrorContains(t, err, "more than can be tracked")
		})
	}
}

func TestBatchPlan_UnitsForOutOfRange(t *testing.T) {
	plan, err := NewBatchPlan(600, 250)
	require.NoError(t, err)

	assert.Zero(t, plan.UnitsFor(-1))
	assert.Zero(t, plan.UnitsFor(3))
	assert.Zero(t, plan.UnitsFor(math.MaxInt))
}

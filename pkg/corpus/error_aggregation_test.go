//go:build !integration

package corpus

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCollector(t *testing.T) {
	tests := []struct {
		name     string
		failFast bool
	}{
		{
			name:     "fail-fast enabled",
			failFast: true,
		},
		{
			name:     "fail-fast disabled",
			failFast: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := NewErrorCollector(tt.failFast)
			require.NotNil(t, collector, "Collector should be created")
			assert.Equal(t, tt.failFast, collector.failFast, "Fail-fast setting should match")
			assert.False(t, collector.HasErrors(), "New collector should have no errors")
			assert.Equal(t, 0, collector.Count(), "New collector should have zero count")
		})
	}
}

func TestErrorCollectorAdd_FailFast(t *testing.T) {
	collector := NewErrorCollector(true)
	err1 := fmt.Errorf("first error")

	result := collector.Add(err1)
	require.Error(t, result, "Should return error immediately in fail-fast mode")
	assert.Equal(t, err1, result, "Should return the exact error")
	assert.True(t, collector.HasErrors(), "The returned error is still recorded")
	assert.Equal(t, err1, collector.Error(), "Error should return the single recorded error")
}

func TestErrorCollectorAdd_Aggregate(t *testing.T) {
	collector := NewErrorCollector(false)
	err1 := fmt.Errorf("first error")
	err2 := fmt.Errorf("second error")

	assert.NoError(t, collector.Add(err1), "Should not return error in aggregate mode")
	assert.NoError(t, collector.Add(err2), "Should not return error in aggregate mode")
	assert.NoError(t, collector.Add(nil), "Nil errors are ignored")

	assert.Equal(t, 2, collector.Count(), "Should have collected both errors")

	joined := collector.Error()
	require.Error(t, joined)
	assert.ErrorIs(t, joined, err1, "Joined error should wrap the first error")
	assert.ErrorIs(t, joined, err2, "Joined error should wrap the second error")
	assert.Equal(t, "first error\nsecond error", joined.Error())
}

func TestErrorCollectorError_Empty(t *testing.T) {
	collector := NewErrorCollector(false)
	assert.NoError(t, collector.Error(), "Empty collector should return nil")
}

func TestErrorCollectorError_Single(t *testing.T) {
	collector := NewErrorCollector(false)
	err := errors.New("only error")
	require.NoError(t, collector.Add(err))
	assert.Same(t, err, collector.Error(), "Single error should not be wrapped")
}

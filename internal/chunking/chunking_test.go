package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	testCases := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{
			name:     "Even split",
			items:    []int{1, 2, 3, 4},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:     "Smaller final chunk",
			items:    []int{1, 2, 3, 4, 5},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:     "Size larger than input",
			items:    []int{1, 2},
			size:     10,
			expected: [][]int{{1, 2}},
		},
		{
			name:     "Empty input",
			items:    nil,
			size:     3,
			expected: nil,
		},
		{
			name:     "Non-positive size",
			items:    []int{1},
			size:     0,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Partition(tc.items, tc.size))
		})
	}
}

func TestPartition_AppendDoesNotLeak(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	chunks := Partition(items, 2)

	_ = append(chunks[0], "x")

	assert.Equal(t, []string{"c", "d"}, chunks[1], "appending to a chunk must not overwrite the next chunk")
	assert.Equal(t, []string{"a", "b", "c", "d"}, items)
}

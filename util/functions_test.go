package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTopNStrInt(t *testing.T) {
	counts := map[string]int{"NP": 3, "VP": 5, "PP": 3, "S": 1}

	top := GetTopNStrInt(counts, 3)
	assert.Equal(t, []TopNStrIntDatum{{"VP", 5}, {"NP", 3}, {"PP", 3}}, top)

	assert.Len(t, GetTopNStrInt(counts, 10), 4)
	assert.Empty(t, GetTopNStrInt(counts, 0))
	assert.Empty(t, GetTopNStrInt(nil, 5))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"NP", "S", "VP"}, SortedKeys(map[string]int{"VP": 1, "S": 2, "NP": 3}))
}

package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairStoreAddContains(t *testing.T) {
	s := NewPairStore[int]()
	require.True(t, s.Add(1, 2))
	require.False(t, s.Add(1, 2), "re-adding an existing pair should report false")
	assert.True(t, s.Contains(1, 2))
	assert.False(t, s.Contains(2, 1))
}

func TestPairStoreContainsAll(t *testing.T) {
	s := NewPairStore[int]()
	s.Add(1, 2)
	s.Add(1, 3)
	assert.True(t, s.ContainsAll(1, []int{2, 3}))
	assert.False(t, s.ContainsAll(1, []int{2, 3, 4}))
	assert.True(t, s.ContainsAll(1, nil))
}

func TestPairStorePairsWithFirstSorted(t *testing.T) {
	s := NewPairStore[int]()
	s.Add(1, 30)
	s.Add(1, 10)
	s.Add(1, 20)
	assert.Equal(t, []int{10, 20, 30}, s.PairsWithFirst(1))
	assert.Empty(t, s.PairsWithFirst(2))
}

func TestTripletStoreAddContains(t *testing.T) {
	s := NewTripletStore[int, int, int]()
	require.True(t, s.Add(1, 2, 3))
	require.False(t, s.Add(1, 2, 3))
	assert.True(t, s.Contains(1, 2, 3))
	assert.False(t, s.Contains(1, 2, 4))
}

func TestTripletStoreLookups(t *testing.T) {
	s := NewTripletStore[int, int, int]()
	s.Add(1, 2, 30)
	s.Add(1, 2, 10)
	s.Add(1, 5, 99)

	assert.Equal(t, []int{10, 30}, s.WithFirstTwo(1, 2))

	withFirst := s.WithFirst(1)
	require.Len(t, withFirst, 3)
	assert.Equal(t, Pair2[int, int]{2, 10}, withFirst[0])
	assert.Equal(t, Pair2[int, int]{2, 30}, withFirst[1])
	assert.Equal(t, Pair2[int, int]{5, 99}, withFirst[2])
}

func TestTripletStoreAllSorted(t *testing.T) {
	s := NewTripletStore[int, int, int]()
	s.Add(2, 1, 1)
	s.Add(1, 1, 1)
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, Triple[int, int, int]{1, 1, 1}, all[0])
	assert.Equal(t, Triple[int, int, int]{2, 1, 1}, all[1])
}

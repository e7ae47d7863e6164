package mathcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOperations(t *testing.T) {
	a := NewSet[int64](1, 2, 3, 3)
	b := NewSet[int64](3, 4, 5)

	assert.Equal(t, 3, a.Len(), "duplicates collapse")
	assert.True(t, a.Contains(2))
	assert.False(t, a.Contains(9))

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, SortedInts(a.Union(b)))
	assert.Equal(t, []int64{3}, SortedInts(a.Intersection(b)))
	assert.Equal(t, []int64{1, 2}, SortedInts(a.Difference(b)))
	assert.Equal(t, []int64{4, 5}, SortedInts(b.Difference(a)))
}

func TestEmptySet(t *testing.T) {
	empty := NewSet[int64]()
	other := NewSet[int64](1)

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, empty.Union(other).Len())
	assert.Equal(t, 0, empty.Intersection(other).Len())
	assert.Equal(t, 0, empty.Difference(other).Len())
}

func TestFunctionApply(t *testing.T) {
	double := NewFunction("double", func(x int64) int64 { return 2 * x })
	got, err := double.Apply(21)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestFunctionDomainRestriction(t *testing.T) {
	small := NewSet[int64](1, 2, 3)
	square := NewFunction("square", func(x int64) int64 { return x * x }).WithDomain(small)

	got, err := square.Apply(3)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)

	_, err = square.Apply(4)
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	inc := NewFunction("inc", func(x int64) int64 { return x + 1 })
	double := NewFunction("double", func(x int64) int64 { return 2 * x })

	// (double ∘ inc)(5) = double(6) = 12
	comp := Compose(double, inc)
	got, err := comp.Apply(5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)
	assert.Equal(t, "(double ∘ inc)", comp.Name)
}

func TestComposeInheritsDomain(t *testing.T) {
	dom := NewSet[int64](0, 1)
	g := NewFunction("g", func(x int64) int64 { return x + 10 }).WithDomain(dom)
	f := NewFunction("f", func(x int64) int64 { return -x })

	comp := Compose(f, g)
	_, err := comp.Apply(5)
	assert.Error(t, err, "composite keeps g's domain")

	got, err := comp.Apply(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-11), got)
}

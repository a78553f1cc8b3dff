package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

func testMatrix(t *testing.T, fingerprint string) *domain.DistanceMatrix {
	t.Helper()
	m, err := domain.NewDistanceMatrix(
		[]int{0, 1},
		[][]float64{{0, 1.5}, {1.5, 0}},
		fingerprint,
	)
	require.NoError(t, err)
	return m
}

func TestMatrixLRURoundtrip(t *testing.T) {
	c, err := NewMatrixLRU(8)
	require.NoError(t, err)

	_, ok := c.Get("absent")
	require.False(t, ok)

	m := testMatrix(t, "fp-1")
	c.Add("fp-1", m)

	got, ok := c.Get("fp-1")
	require.True(t, ok)
	require.Same(t, m, got)
}

func TestMatrixLRUEvictsOldest(t *testing.T) {
	c, err := NewMatrixLRU(2)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		fp := fmt.Sprintf("fp-%d", i)
		c.Add(fp, testMatrix(t, fp))
	}

	_, ok := c.Get("fp-1")
	require.False(t, ok)
	_, ok = c.Get("fp-3")
	require.True(t, ok)
}

func TestMatrixLRURejectsBadSize(t *testing.T) {
	_, err := NewMatrixLRU(0)
	require.Error(t, err)
}

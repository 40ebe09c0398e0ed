package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedCoreSet(t *testing.T) {
	cases := []struct {
		n    int
		want CoreSet
	}{
		{0, CoreSet{0}},
		{1, CoreSet{0}},
		{2, CoreSet{0, 1}},
		{3, CoreSet{0, 1}},
		{4, CoreSet{0, 1}},
		{6, CoreSet{0, 1, 2}},
		{8, CoreSet{0, 1, 2, 3}},
		{12, CoreSet{0, 1, 2, 3, 4, 5}},
		{16, CoreSet{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n_%d", tc.n), func(t *testing.T) {
			got := LimitedCoreSet(tc.n)
			require.Equal(t, tc.want, got)
			for _, c := range got {
				assert.Less(t, c, max(tc.n, 1), "core must exist")
			}
		})
	}
}

func TestFullCoreSet(t *testing.T) {
	assert.Equal(t, CoreSet{0}, FullCoreSet(0))
	assert.Equal(t, CoreSet{0}, FullCoreSet(1))
	assert.Equal(t, CoreSet{0, 1, 2, 3, 4, 5}, FullCoreSet(6))
	assert.Equal(t, 32, FullCoreSet(32).Len())
}

func TestLimitedIsSubsetOfFull(t *testing.T) {
	for n := 1; n <= 64; n++ {
		full := FullCoreSet(n)
		for _, c := range LimitedCoreSet(n) {
			assert.True(t, full.Contains(c), "n=%d core=%d", n, c)
		}
	}
}

func TestNewCoreSet_SortsAndDedups(t *testing.T) {
	s := NewCoreSet(3, 1, -2, 3, 0, 1)
	assert.Equal(t, CoreSet{0, 1, 3}, s)
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))
	assert.True(t, s.Equal(CoreSet{0, 1, 3}))
	assert.False(t, s.Equal(CoreSet{0, 1}))
}

func TestCoreSet_String(t *testing.T) {
	cases := []struct {
		in   CoreSet
		want string
	}{
		{nil, ""},
		{CoreSet{0}, "0"},
		{CoreSet{0, 1, 2, 3}, "0-3"},
		{CoreSet{0, 2, 4}, "0,2,4"},
		{CoreSet{0, 1, 2, 3, 6, 8, 9}, "0-3,6,8-9"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

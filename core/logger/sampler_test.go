package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRatioSpec(t *testing.T) {
	cases := map[string][2]int{
		"":      {0, 0},
		"1/50":  {1, 50},
		" 2/ 5": {2, 5},
		"10":    {1, 10},
		"25%":   {25, 100},
		"all":   {0, 0},
		"x/y":   {0, 0},
		"-3":    {0, 0},
	}
	for raw, want := range cases {
		n, d := parseRatio(raw)
		assert.Equal(t, want, [2]int{n, d}, "ratio %q", raw)
	}
}

func TestRatioSamplerAllow(t *testing.T) {
	s := newRatioSampler(2, 5)
	passed := 0
	for i := 0; i < 50; i++ {
		if s.Allow() {
			passed++
		}
	}
	assert.Equal(t, 20, passed)

	s.Set(0, 0)
	for i := 0; i < 10; i++ {
		assert.True(t, s.Allow())
	}

	s.Set(5, 5)
	assert.True(t, s.Allow())
}

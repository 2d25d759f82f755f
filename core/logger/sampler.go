package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

type ratio struct {
	pass, every uint64
}

// ratioSampler lets pass out of every `every` debug events through.
// A nil ratio lets everything through.
type ratioSampler struct {
	cfg  atomic.Pointer[ratio]
	seen atomic.Uint64
}

func newRatioSampler(pass, every int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(pass, every)
	return s
}

// Set replaces the ratio and restarts the window. Non-positive values
// disable sampling.
func (s *ratioSampler) Set(pass, every int) {
	s.seen.Store(0)
	if pass <= 0 || every <= 0 || pass >= every {
		s.cfg.Store(nil)
		return
	}
	s.cfg.Store(&ratio{pass: uint64(pass), every: uint64(every)})
}

// Allow reports whether the current event should pass sampling.
func (s *ratioSampler) Allow() bool {
	r := s.cfg.Load()
	if r == nil {
		return true
	}
	n := s.seen.Add(1) - 1
	return n%r.every < r.pass
}

// parseRatio accepts "n/d", "d" (one in d) and "p%". Anything else,
// including "all" and "off", disables sampling.
func parseRatio(raw string) (int, int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case raw == "":
		return 0, 0
	case strings.HasSuffix(raw, "%"):
		p, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(raw, "%")))
		if err != nil || p <= 0 {
			return 0, 0
		}
		return p, 100
	case strings.Contains(raw, "/"):
		num, den, _ := strings.Cut(raw, "/")
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return n, d
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}

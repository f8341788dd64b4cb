package workout

import (
	"sync"
	"time"
)

// Stamper hands out epoch millisecond timestamps that strictly increase,
// even when two logs are saved within the same millisecond.
type Stamper struct {
	mutex sync.Mutex
	now   func() time.Time
	last  int64
}

func NewStamper(now func() time.Time) *Stamper {
	if now == nil {
		now = time.Now
	}
	return &Stamper{now: now}
}

func (s *Stamper) Next() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ts := s.now().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	return ts
}

// Observe makes sure later stamps come after ts (used after loading persisted logs).
func (s *Stamper) Observe(ts int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if ts > s.last {
		s.last = ts
	}
}

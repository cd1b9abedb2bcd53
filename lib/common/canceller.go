package common

import "sync"

// Canceller is closed once by the first party that gives up on a run. The
// error passed to CancelWithError is kept so the coordinator can report it.
type Canceller interface {
	C() chan struct{}
	Cancelled() bool
	Cancel()
	CancelWithError(err error)
	Err() error
}

type canceller struct {
	mtx       sync.Mutex
	cancelled bool
	err       error
	c         chan struct{}
	once      sync.Once
}

func NewCanceller() Canceller {
	return &canceller{
		cancelled: false,
		c:         make(chan struct{}),
	}
}

func (s *canceller) C() chan struct{} {
	return s.c
}

func (s *canceller) Cancelled() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.cancelled
}

func (s *canceller) Cancel() {
	s.CancelWithError(nil)
}

func (s *canceller) CancelWithError(err error) {
	s.once.Do(func() {
		s.mtx.Lock()
		s.cancelled = true
		s.err = err
		s.mtx.Unlock()
		close(s.c)
	})
}

func (s *canceller) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.err
}

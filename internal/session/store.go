// Package session keeps the short-lived per-video state that follow-up
// requests depend on: the processed VideoContext and the per-operation
// cooldowns.
package session

import (
	"container/list"
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// VideoContext is what later calls for the same video need to know.
type VideoContext struct {
	VideoID     string
	Title       string
	Topic       string
	Transcript  string
	Explanation string
	CreatedAt   time.Time
}

type entry struct {
	ctx       VideoContext
	expiresAt time.Time
}

// Store is a bounded LRU of VideoContexts. Each entry expires ttl after it
// was last written or read.
type Store struct {
	mu    sync.Mutex
	max   int
	ttl   time.Duration
	now   Clock
	order *list.List // front is most recently used
	items map[string]*list.Element

	stopOnce sync.Once
	stop     chan struct{}
}

func NewStore(maxEntries int, ttl time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Store{
		max:   maxEntries,
		ttl:   ttl,
		now:   clock,
		order: list.New(),
		items: make(map[string]*list.Element),
		stop:  make(chan struct{}),
	}
}

// Get returns the context for videoID if present and not expired.
func (s *Store) Get(videoID string) (VideoContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[videoID]
	if !ok {
		return VideoContext{}, false
	}
	e := el.Value.(*entry)
	now := s.now()
	if !now.Before(e.expiresAt) {
		s.removeElement(el)
		return VideoContext{}, false
	}
	e.expiresAt = now.Add(s.ttl)
	s.order.MoveToFront(el)
	return e.ctx, true
}

// Put stores vc, replacing any previous context for the same video and
// evicting the least recently used entry when full.
func (s *Store) Put(vc VideoContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if vc.CreatedAt.IsZero() {
		vc.CreatedAt = now
	}

	if el, ok := s.items[vc.VideoID]; ok {
		e := el.Value.(*entry)
		e.ctx = vc
		e.expiresAt = now.Add(s.ttl)
		s.order.MoveToFront(el)
		return
	}

	el := s.order.PushFront(&entry{ctx: vc, expiresAt: now.Add(s.ttl)})
	s.items[vc.VideoID] = el
	for s.order.Len() > s.max {
		s.removeElement(s.order.Back())
	}
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*entry).expiresAt) {
			s.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *Store) removeElement(el *list.Element) {
	s.order.Remove(el)
	delete(s.items, el.Value.(*entry).ctx.VideoID)
}

// StartJanitor sweeps every interval until Stop is called. Extra sweepers,
// such as a MemoryCooldown's, run on the same tick.
func (s *Store) StartJanitor(interval time.Duration, sweepers ...func() int) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.Sweep()
				for _, sweep := range sweepers {
					sweep()
				}
			}
		}
	}()
}

func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

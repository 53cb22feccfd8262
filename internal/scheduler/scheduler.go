// Package scheduler runs GLB parsing in the background with a content-keyed,
// single-flight model cache.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/glbmodel/internal/lod"
	"github.com/Faultbox/glbmodel/internal/model"
)

// DefaultPlaceholderName names the placeholder returned for unusable input.
const DefaultPlaceholderName = "Model"

// DecodeFunc turns GLB bytes into an unreduced model.
type DecodeFunc func(data []byte, fp model.Fingerprint) (*model.Model3D, error)

// State is the lifecycle of one cache key.
type State int

const (
	StateNone State = iota
	StateQueued
	StateDecoding
	StateCached
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateDecoding:
		return "decoding"
	case StateCached:
		return "cached"
	case StateFailed:
		return "failed"
	default:
		return "none"
	}
}

// CacheStats holds cache counters.
type CacheStats struct {
	CachedModelCount int
	Hits             int64
	Misses           int64
	Decodes          int64
}

type entry struct {
	key      model.Fingerprint
	model    *model.Model3D
	failed   bool
	variants map[int]*model.Model3D
}

// Scheduler decodes GLB buffers on a bounded pool of workers. Requests for
// the same bytes share one decode, and the unreduced result is cached until
// ClearCache. Callers always get a model: failures yield a placeholder.
type Scheduler struct {
	log             *zap.Logger
	workers         int
	reducer         *lod.Reducer
	decode          DecodeFunc
	placeholderName string

	sem   *semaphore.Weighted
	group singleflight.Group

	mu       sync.Mutex
	entries  map[model.Fingerprint]*entry
	inflight map[model.Fingerprint]State
	hits     int64
	misses   int64
	decodes  int64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// WithWorkers bounds concurrent decodes. n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		s.workers = n
	}
}

// WithReducer sets the reducer applied to cached models.
func WithReducer(r *lod.Reducer) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.reducer = r
		}
	}
}

// WithDecoder replaces the decode pipeline.
func WithDecoder(fn DecodeFunc) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.decode = fn
		}
	}
}

// WithPlaceholderName sets the base name of placeholder models.
func WithPlaceholderName(name string) Option {
	return func(s *Scheduler) {
		s.placeholderName = name
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		log:             zap.NewNop(),
		reducer:         lod.NewReducer(),
		placeholderName: DefaultPlaceholderName,
		entries:         make(map[model.Fingerprint]*entry),
		inflight:        make(map[model.Fingerprint]State),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.decode == nil {
		s.decode = s.defaultDecode
	}
	s.sem = semaphore.NewWeighted(int64(s.workers))
	return s
}

func (s *Scheduler) defaultDecode(data []byte, fp model.Fingerprint) (*model.Model3D, error) {
	return model.Decode(data, model.DecodeOptions{Logger: s.log, Fingerprint: &fp})
}

// Workers returns the decode concurrency limit.
func (s *Scheduler) Workers() int {
	return s.workers
}

// ParseAsync starts parsing data and returns a channel that receives exactly
// one model. A target <= 0 requests the unreduced model. data must not be
// modified until the model is delivered.
func (s *Scheduler) ParseAsync(data []byte, target int) <-chan *model.Model3D {
	ch := make(chan *model.Model3D, 1)
	go func() {
		ch <- s.parse(data, target)
		close(ch)
	}()
	return ch
}

// Parse is ParseAsync followed by a wait. It returns ctx.Err() if ctx ends
// first; the parse itself continues and its result is still cached.
func (s *Scheduler) Parse(ctx context.Context, data []byte, target int) (*model.Model3D, error) {
	select {
	case m := <-s.ParseAsync(data, target):
		return m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// State reports where the key for data is in its lifecycle.
func (s *Scheduler) State(data []byte) State {
	fp := model.FingerprintOf(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(fp)
}

func (s *Scheduler) stateLocked(fp model.Fingerprint) State {
	if e, ok := s.entries[fp]; ok {
		if e.failed {
			return StateFailed
		}
		return StateCached
	}
	return s.inflight[fp]
}

// ClearCache drops every cached model and variant. Parses already running
// still complete and repopulate their own key.
func (s *Scheduler) ClearCache() {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[model.Fingerprint]*entry)
	s.mu.Unlock()

	s.log.Debug("cache cleared", zap.Int("models", n))
}

// CacheStats returns a snapshot of the cache counters.
func (s *Scheduler) CacheStats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CacheStats{
		CachedModelCount: len(s.entries),
		Hits:             s.hits,
		Misses:           s.misses,
		Decodes:          s.decodes,
	}
}

// ModelStats returns model.Stats(m).
func (s *Scheduler) ModelStats(m *model.Model3D) model.ModelStats {
	return model.Stats(m)
}

func (s *Scheduler) parse(data []byte, target int) *model.Model3D {
	fp := model.FingerprintOf(data)

	s.mu.Lock()
	e, ok := s.entries[fp]
	if ok {
		s.hits++
	} else {
		s.misses++
		if s.inflight[fp] == StateNone {
			s.setStateLocked(fp, StateQueued)
		}
	}
	s.mu.Unlock()

	if !ok {
		v, _, _ := s.group.Do(fp.String(), func() (any, error) {
			return s.load(data, fp), nil
		})
		e = v.(*entry)
	}
	return s.variant(e, target)
}

// load decodes data unless another flight already cached it.
func (s *Scheduler) load(data []byte, fp model.Fingerprint) *entry {
	s.mu.Lock()
	if e, ok := s.entries[fp]; ok {
		delete(s.inflight, fp)
		s.mu.Unlock()
		return e
	}
	s.mu.Unlock()

	// Only waiters may give up, never the decode. Acquire fails only when
	// its context is done, which Background never is.
	if err := s.sem.Acquire(context.Background(), 1); err != nil {
		panic(fmt.Sprintf("scheduler: acquiring worker slot: %v", err))
	}
	defer s.sem.Release(1)

	s.mu.Lock()
	s.setStateLocked(fp, StateDecoding)
	s.decodes++
	s.mu.Unlock()

	start := time.Now()
	m, err := s.safeDecode(data, fp)

	e := &entry{key: fp, model: m}
	if err != nil {
		s.log.Warn("parse failed, using placeholder",
			zap.String("key", fp.Short()),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		e.model = model.Placeholder(s.placeholderName)
		e.failed = true
	} else {
		s.log.Debug("model cached",
			zap.String("key", fp.Short()),
			zap.String("name", m.Name),
			zap.Int("faces", len(m.Faces)),
			zap.Duration("elapsed", time.Since(start)))
	}

	s.mu.Lock()
	s.entries[fp] = e
	delete(s.inflight, fp)
	s.log.Debug("state", zap.String("key", fp.Short()), zap.Stringer("state", s.stateLocked(fp)))
	s.mu.Unlock()
	return e
}

func (s *Scheduler) safeDecode(data []byte, fp model.Fingerprint) (m *model.Model3D, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("decode panic: %v", r)
		}
	}()

	m, err = s.decode(data, fp)
	if err == nil && m == nil {
		err = errors.New("decoder returned no model")
	}
	return m, err
}

// variant returns the model for target, reducing and memoizing on first use.
// Placeholders are never reduced.
func (s *Scheduler) variant(e *entry, target int) *model.Model3D {
	if target <= 0 || e.failed || len(e.model.Faces) <= target {
		return e.model
	}

	s.mu.Lock()
	if m, ok := e.variants[target]; ok {
		s.mu.Unlock()
		return m
	}
	s.mu.Unlock()

	m := s.reducer.Reduce(e.model, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := e.variants[target]; ok {
		return prev
	}
	if e.variants == nil {
		e.variants = make(map[int]*model.Model3D)
	}
	e.variants[target] = m
	s.log.Debug("variant cached",
		zap.String("key", e.key.Short()),
		zap.Int("target", target),
		zap.Int("faces", len(m.Faces)))
	return m
}

func (s *Scheduler) setStateLocked(fp model.Fingerprint, st State) {
	s.inflight[fp] = st
	s.log.Debug("state", zap.String("key", fp.Short()), zap.Stringer("state", st))
}

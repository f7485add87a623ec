package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"reflect"
	"strings"

	"golang.org/x/sync/semaphore"
)

var (
	ErrUnknownLabel = errors.New("assets: unknown label")
	ErrNotLoaded    = errors.New("assets: not loaded")
)

// Decoder turns file bytes plus an optional sub-asset label into a value.
type Decoder[T any] func(data []byte, label string) (T, error)

// Server resolves asset paths asynchronously. Files are read and decoded on
// worker goroutines; results are published to handles only by Update, which the
// host calls once per tick before running systems.
type Server struct {
	fsys    fs.FS
	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan func()
	handles map[string]any
	pending int
	logf    func(format string, args ...any)
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithMaxConcurrentLoads bounds the number of files decoded at once.
func WithMaxConcurrentLoads(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithLogf replaces log.Printf for load failure messages.
func WithLogf(logf func(format string, args ...any)) ServerOption {
	return func(s *Server) {
		if logf != nil {
			s.logf = logf
		}
	}
}

func NewServer(fsys fs.FS, options ...ServerOption) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		fsys:    fsys,
		sem:     semaphore.NewWeighted(4),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan func(), 64),
		handles: map[string]any{},
		logf:    log.Printf,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Load returns the handle for path, starting a load on first request. Paths
// may carry a label after '#', e.g. "models/dog.yaml#Animation1".
func Load[T any](s *Server, path string, decode Decoder[T]) *Handle[T] {
	key := path + "|" + reflect.TypeFor[T]().String()
	if existing, ok := s.handles[key]; ok {
		if h, ok := existing.(*Handle[T]); ok {
			return h
		}
	}

	h := &Handle[T]{path: path}
	s.handles[key] = h
	s.pending++

	file, label, _ := strings.Cut(path, "#")
	go func() {
		if err := s.sem.Acquire(s.ctx, 1); err != nil {
			return
		}
		defer s.sem.Release(1)

		var value T
		data, err := fs.ReadFile(s.fsys, cleanAssetPath(file))
		if err == nil {
			value, err = decode(data, label)
		}
		if err != nil {
			err = fmt.Errorf("assets: load %s: %w", path, err)
		}

		select {
		case s.done <- func() { h.resolve(value, err) }:
		case <-s.ctx.Done():
		}
	}()
	return h
}

// Update publishes finished loads and returns how many were applied.
func (s *Server) Update() int {
	applied := 0
	for {
		select {
		case fn := <-s.done:
			fn()
			s.pending--
			applied++
		default:
			s.logFailures()
			return applied
		}
	}
}

// Pending returns the number of loads not yet published.
func (s *Server) Pending() int {
	return s.pending
}

// Close abandons outstanding loads. Their handles stay in the loading state.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) logFailures() {
	for key, v := range s.handles {
		if f, ok := v.(interface{ Err() error }); ok && f.Err() != nil {
			s.logf("%v", f.Err())
			delete(s.handles, key)
		}
	}
}

// Package queue warms the render cache in the background.
package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// NoteRenderer renders a note and stores the result in the render cache.
type NoteRenderer interface {
	RenderNote(ctx context.Context, note *domain.Note) (string, error)
}

// Dispatcher routes notes to a fixed set of workers using consistent hashing
// on the note id, so revisions of one note are rendered in order.
type Dispatcher struct {
	workers []chan *domain.Note
	log     zerolog.Logger
	wg      sync.WaitGroup
	onDrop  func()
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.Note, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Note, channelBuffer)
	}
	return d
}

// OnDrop registers a callback invoked whenever a note is dropped.
func (d *Dispatcher) OnDrop(fn func()) {
	d.onDrop = fn
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context, renderer NoteRenderer) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch, renderer)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a copy of note to the worker responsible for it. It never
// blocks: when that worker's buffer is full the note is dropped and false is
// returned.
func (d *Dispatcher) Enqueue(note *domain.Note) bool {
	n := *note
	select {
	case d.workers[d.shardIndex(n.ID)] <- &n:
		return true
	default:
		d.log.Warn().Str("note_id", n.ID).Msg("render queue full, dropping warm-up")
		if d.onDrop != nil {
			d.onDrop()
		}
		return false
	}
}

// shardIndex maps a note id deterministically to a worker index.
func (d *Dispatcher) shardIndex(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Note, renderer NoteRenderer) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case note := <-ch:
			if _, err := renderer.RenderNote(ctx, note); err != nil {
				d.log.Error().Err(err).
					Str("note_id", note.ID).
					Int("worker_id", id).
					Msg("render warm-up failed")
			}
		}
	}
}

// Package audit records security events off the request path. A fixed pool
// of workers drains a buffered channel and writes structured log entries;
// Submit never blocks, so a slow sink cannot stall request handling.
package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is one security observation worth recording.
type Event struct {
	Kind      string // "bot_detected", "shield_triggered", "rate_limited"
	IP        string
	UserAgent string
	Method    string
	Path      string
	Tier      string
	Blocked   bool
}

type Recorder struct {
	events chan Event
	wg     sync.WaitGroup
	log    zerolog.Logger
}

// NewRecorder starts n workers. n<=0 defaults to 1.
func NewRecorder(n int, log zerolog.Logger) *Recorder {
	if n <= 0 {
		n = 1
	}
	r := &Recorder{
		events: make(chan Event, 256),
		log:    log,
	}
	r.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer r.wg.Done()
			for e := range r.events {
				r.record(e)
			}
		}()
	}
	return r
}

// Submit queues an event. Events are dropped when the buffer is full.
func (r *Recorder) Submit(e Event) {
	select {
	case r.events <- e:
	default:
		r.log.Warn().Str("kind", e.Kind).Msg("audit buffer full, event dropped")
	}
}

// Stop closes the queue and waits for in-flight events to be written.
func (r *Recorder) Stop() {
	close(r.events)
	r.wg.Wait()
}

func (r *Recorder) record(e Event) {
	evt := r.log.Info()
	if e.Blocked {
		evt = r.log.Warn()
	}
	evt.
		Str("kind", e.Kind).
		Str("ip", e.IP).
		Str("user_agent", e.UserAgent).
		Str("method", e.Method).
		Str("path", e.Path).
		Str("tier", e.Tier).
		Bool("blocked", e.Blocked).
		Msg("security event")
}

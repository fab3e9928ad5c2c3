package playback

import (
	"errors"
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/data/codec"
	"github.com/penwyp/go-input-replay/internal/util"
)

// ErrSessionEnded is returned when a session is used after End.
var ErrSessionEnded = errors.New("playback: session already ended")

// ErrNoSource is returned when a session is begun without a log or a file
// path to load one from.
var ErrNoSource = errors.New("playback: no source configured")

// Source is where a playback session's events come from: a log handed over
// directly, or a recording file to deserialize.
type Source struct {
	log    *timeline.EventLog
	cursor int
	path   string
}

// SourceFromLog replays a log already in memory, starting at its beginning.
func SourceFromLog(log *timeline.EventLog) Source {
	return Source{log: log}
}

// SourceFromFile replays a persisted recording, restoring its saved cursor.
func SourceFromFile(path string) Source {
	return Source{path: path}
}

// Config carries the per-session playback settings.
type Config struct {
	Source   Source
	Strategy Strategy

	// Window, when set, overrides the recorded target of every replayed
	// event that carries one.
	Window *event.WindowID

	// Resolver, when set, receives pointer-position side effects.
	Resolver WindowResolver
}

// Session is an active playback session: the engine plus exclusive ownership
// of the log for the session's lifetime. I/O happens only in Begin; every
// Tick is pure computation.
type Session struct {
	engine *Engine
	active bool
}

// Begin starts a playback session, deserializing the source file when one is
// configured. I/O and format failures surface here and nowhere else.
func Begin(cfg Config, sinks Sinks) (*Session, error) {
	log := cfg.Source.log
	cursor := cfg.Source.cursor
	if cfg.Source.path != "" {
		var err error
		log, cursor, err = codec.Load(cfg.Source.path)
		if err != nil {
			return nil, err
		}
		util.LogInfof("playback: loaded %d events from %s", log.Len(), cfg.Source.path)
	}
	if log == nil {
		return nil, ErrNoSource
	}

	reader := timeline.NewReader(log)
	if err := reader.SetCursor(cursor); err != nil {
		return nil, err
	}

	engine := NewEngine(reader, cfg.Strategy, sinks)
	if cfg.Window != nil {
		engine.SetWindowOverride(*cfg.Window)
	}
	if cfg.Resolver != nil {
		engine.SetResolver(cfg.Resolver)
	}

	return &Session{engine: engine, active: true}, nil
}

// Engine exposes the session's state machine, or nil after End.
func (s *Session) Engine() *Engine {
	return s.engine
}

// Tick replays one tick's worth of events. Ticking an ended session emits
// nothing.
func (s *Session) Tick(frame timeline.FrameCount, elapsed, delta time.Duration) {
	if !s.active {
		return
	}
	s.engine.Tick(frame, elapsed, delta)
}

// End releases the session's state, including the log itself.
func (s *Session) End() error {
	if !s.active {
		return ErrSessionEnded
	}
	s.active = false
	s.engine = nil
	return nil
}

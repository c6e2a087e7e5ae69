// Package eventlog writes simulator events as JSON lines.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/gesture"
	"github.com/SeamusWaldron/cubesim/internal/history"
)

// Version is written in every log header.
const Version = "1.0"

// EventType identifies the type of logged event.
type EventType string

const (
	EventHeader           EventType = "header"
	EventTurnStarted      EventType = "turn_started"
	EventTurnCommitted    EventType = "turn_committed"
	EventGestureDiscarded EventType = "gesture_discarded"
	EventRejected         EventType = "rejected"
)

// Event represents a single logged event.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Type      EventType `json:"type"`
	Move      string    `json:"move,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Face      string    `json:"face,omitempty"`
	Request   string    `json:"request,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Header is the first line of a log.
type Header struct {
	Type      EventType `json:"type"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Size      string    `json:"size"`
	SessionID string    `json:"session_id,omitempty"`
}

// Log is a parsed log file.
type Log struct {
	Header Header
	Events []Event
}

// Logger appends events to a JSONL stream. A nil *Logger discards
// everything, so callers need not check whether logging is enabled.
type Logger struct {
	w     io.Writer
	file  *os.File
	start time.Time
	now   func() time.Time
	err   error
}

// New writes a header to w and returns a logger appending to it.
func New(w io.Writer, size cube.Size, sessionID string) (*Logger, error) {
	l := &Logger{w: w, now: time.Now}
	l.start = l.now()
	h := Header{Type: EventHeader, Version: Version, CreatedAt: l.start, Size: size.String(), SessionID: sessionID}
	if err := l.writeJSON(h); err != nil {
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}
	return l, nil
}

// Create opens a new timestamped log file in dir.
func Create(dir string, size cube.Size, sessionID string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("session_%s.jsonl", time.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l, err := New(file, size, sessionID)
	if err != nil {
		file.Close()
		return nil, err
	}
	l.file = file
	return l, nil
}

// TurnStarted logs a turn that began animating.
func (l *Logger) TurnStarted(m cube.Move, origin history.Origin) {
	l.log(Event{Type: EventTurnStarted, Move: m.Notation(), Origin: origin.String()})
}

// TurnCommitted logs a turn that finished and changed the grid.
func (l *Logger) TurnCommitted(m cube.Move, origin history.Origin) {
	l.log(Event{Type: EventTurnCommitted, Move: m.Notation(), Origin: origin.String()})
}

// GestureDiscarded logs a drag sample that produced no turn.
func (l *Logger) GestureDiscarded(d gesture.Discard) {
	e := Event{Type: EventGestureDiscarded, Reason: d.Reason.String(), Face: d.Anchor.Face.String()}
	if d.Err != nil {
		e.Error = d.Err.Error()
	}
	l.log(e)
}

// Rejected logs a request refused by the cube.
func (l *Logger) Rejected(request string, err error) {
	e := Event{Type: EventRejected, Request: request}
	if err != nil {
		e.Error = err.Error()
	}
	l.log(e)
}

func (l *Logger) log(e Event) {
	if l == nil || l.err != nil {
		return
	}
	e.Timestamp = l.now()
	e.ElapsedMs = e.Timestamp.Sub(l.start).Milliseconds()
	l.err = l.writeJSON(e)
}

func (l *Logger) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}

// Err returns the first write error. Logging stops after it.
func (l *Logger) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Close closes the log file, if the logger owns one.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the current log file path.
func (l *Logger) FilePath() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Read parses a log from r.
func Read(r io.Reader) (*Log, error) {
	log := &Log{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			if err := json.Unmarshal(line, &log.Header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			if log.Header.Type != EventHeader {
				return nil, fmt.Errorf("line 1: expected header, got %q", log.Header.Type)
			}
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	if lineNum == 0 {
		return nil, fmt.Errorf("empty log")
	}
	return log, nil
}

// Load parses the log file at path.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()
	return Read(file)
}

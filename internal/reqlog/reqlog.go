// Package reqlog is the append-only request log sink. Writes are
// fire-and-forget: the serving path hands an entry to a buffered channel and
// moves on; a single writer goroutine persists entries to a separate SQLite
// database. A failed or dropped write is a local warning, never a request
// failure.
package reqlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const writeBuffer = 256

// Entry is one logged API request.
type Entry struct {
	Endpoint    string
	Method      string
	Query       string
	Filters     map[string]string
	ResultCount int
	IP          string
	UserAgent   string
	Latency     time.Duration
}

// Sink persists entries asynchronously.
type Sink struct {
	db *sql.DB
	ch chan Entry
	wg sync.WaitGroup

	closeOnce sync.Once
}

// Open opens (or creates) the request log database and starts the writer.
func Open(path string) (*Sink, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open log db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS request_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT DEFAULT (datetime('now')),
		endpoint TEXT,
		method TEXT,
		query TEXT,
		filters TEXT,
		results_count INTEGER,
		ip TEXT,
		user_agent TEXT,
		response_time_ms INTEGER
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create log schema: %w", err)
	}

	s := &Sink{
		db: db,
		ch: make(chan Entry, writeBuffer),
	}
	s.wg.Add(1)
	go s.writeLoop()

	slog.Info("request log sink opened", "path", path)
	return s, nil
}

// Record queues an entry for writing. It never blocks: when the buffer is
// full the entry is dropped with a local warning. The caller holds no
// reference to the outcome.
func (s *Sink) Record(e Entry) {
	select {
	case s.ch <- e:
	default:
		slog.Warn("request log buffer full, dropping entry", "endpoint", e.Endpoint)
	}
}

func (s *Sink) writeLoop() {
	defer s.wg.Done()
	for e := range s.ch {
		if err := s.write(e); err != nil {
			slog.Warn("request log write failed", "endpoint", e.Endpoint, "error", err)
		}
	}
}

func (s *Sink) write(e Entry) error {
	var filters any
	if len(e.Filters) > 0 {
		b, err := json.Marshal(e.Filters)
		if err != nil {
			return fmt.Errorf("marshal filters: %w", err)
		}
		filters = string(b)
	}

	_, err := s.db.Exec(`INSERT INTO request_logs
		(endpoint, method, query, filters, results_count, ip, user_agent, response_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Endpoint, e.Method, e.Query, filters,
		e.ResultCount, e.IP, e.UserAgent, e.Latency.Milliseconds())
	return err
}

// Close drains the queue and closes the database.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		close(s.ch)
	})
	s.wg.Wait()
	return s.db.Close()
}

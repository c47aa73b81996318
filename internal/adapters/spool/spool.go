// Package spool feeds archive records to the upload service from a spool
// directory. The host data store drops one JSON file per archive record;
// the watcher picks each file up, hands the parsed record to a callback and
// removes the file. This is the standalone agent's substitute for an
// in-process new-record event stream.
package spool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/internal/ports"
)

// rescanInterval bounds how long a record can sit unnoticed if a filesystem
// event is missed.
const rescanInterval = 30 * time.Second

// record is the on-disk JSON shape of one archive record.
type record struct {
	Timestamp int64              `json:"timestamp"`
	Units     string             `json:"units"`
	Fields    map[string]float64 `json:"fields"`
}

// Handler receives each parsed record. It must not block; the upload
// service's enqueue path satisfies that.
type Handler func(domain.ArchiveRecord)

// Watcher watches a spool directory for *.json record files.
type Watcher struct {
	dir     string
	handler Handler
	logger  ports.Logger
}

// NewWatcher creates a watcher for dir, delivering records to handler.
func NewWatcher(dir string, handler Handler, logger ports.Logger) *Watcher {
	return &Watcher{dir: dir, handler: handler, logger: logger}
}

// Run watches the spool directory until the context is canceled. Files
// already present at startup are consumed first. A periodic rescan catches
// anything a missed event left behind.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.Scan()

	ticker := time.NewTicker(rescanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			w.consume(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", ports.Err(err))

		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan consumes every record file currently in the spool directory.
func (w *Watcher) Scan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("read spool dir", ports.String("dir", w.dir), ports.Err(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		w.consume(filepath.Join(w.dir, e.Name()))
	}
}

// consume parses one record file, hands it off and removes it. A file that
// does not parse is left in place: a partial write will be retried on its
// next Write event, and the periodic rescan retries the rest.
func (w *Watcher) consume(path string) {
	rec, err := ReadRecord(path)
	if err != nil {
		w.logger.Debug("skipping unreadable record file",
			ports.String("file", path), ports.Err(err))
		return
	}

	w.handler(rec)

	if err := os.Remove(path); err != nil {
		w.logger.Warn("remove consumed record file",
			ports.String("file", path), ports.Err(err))
	}
}

// ReadRecord parses one spool file into an ArchiveRecord.
func ReadRecord(path string) (domain.ArchiveRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ArchiveRecord{}, err
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.ArchiveRecord{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if rec.Timestamp <= 0 {
		return domain.ArchiveRecord{}, fmt.Errorf("%s: missing timestamp", filepath.Base(path))
	}
	if rec.Units == "" {
		return domain.ArchiveRecord{}, fmt.Errorf("%s: missing units", filepath.Base(path))
	}
	return domain.ArchiveRecord{
		Timestamp: rec.Timestamp,
		Units:     rec.Units,
		Fields:    rec.Fields,
	}, nil
}

// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package jsonstore implements the flat-file document store backing every Vidora
collection.

Each entity kind (users, videos, comments, categories) is persisted as one JSON
array in its own file under the data directory. A [Collection] owns exactly one
file and serializes access to it with a per-collection lock, so concurrent
read-modify-write sequences (counter increments, appends) never lose updates
while unrelated collections proceed fully in parallel.

# Degraded mode

The store favors availability over strict consistency. A failed read is logged,
counted in metrics, and surfaces as an empty collection; a failed write is
logged, counted, and leaves the previous file contents untouched. Callers must
treat an empty result as "unknown state, proceed as if no data". These paths
are observable via structured logs and the docstore_* Prometheus counters —
they are a documented policy, not silent data loss.

# Durability

Writes go to a temporary file in the same directory followed by a rename, so a
reader never observes a partially written array. Crash-atomicity at the storage
medium level is not guaranteed.
*/
package jsonstore

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Document is the self-referential constraint every stored entity satisfies.
//
// WithDeleted returns a copy with the soft-delete flag set; value semantics
// keep the store free of pointer aliasing between callers and the cache-less
// load/save cycle.
type Document[T any] interface {
	// DocID returns the caller-generated unique identifier.
	DocID() string

	// DocDeleted reports the soft-delete flag.
	DocDeleted() bool

	// WithDeleted returns a copy of the document with the soft-delete flag set.
	WithDeleted(deleted bool) T
}

// Collection is a file-backed set of documents of one entity kind.
//
// # Concurrency
//
// All exported methods are safe for concurrent use. Mutations hold the write
// lock across the whole load-mutate-save sequence; plain queries share a read
// lock. Locks are per-collection, never global.
type Collection[T Document[T]] struct {
	name string // collection name for logs and metrics, e.g. "videos"
	path string // full path of the backing file

	mu  sync.RWMutex
	log *slog.Logger
}

// New constructs a Collection bound to dataDir/fileName and materializes the
// backing file holding an empty array if it does not exist yet.
//
// Initialization is idempotent; only a failure to create the data directory or
// the initial file is returned, since continuing without a writable backing
// file would turn every later operation into a degraded no-op.
func New[T Document[T]](dataDir, fileName, name string, log *slog.Logger) (*Collection[T], error) {
	collection := &Collection[T]{
		name: name,
		path: filepath.Join(dataDir, fileName),
		log:  log.With(slog.String("collection", name)),
	}

	if err := collection.ensureInitialized(dataDir); err != nil {
		return nil, err
	}

	return collection, nil
}

// ensureInitialized creates the data directory and an empty backing file on
// first access. Subsequent calls are no-ops.
func (c *Collection[T]) ensureInitialized(dataDir string) error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// O_EXCL so a concurrent initializer cannot truncate a file the other
	// one just wrote.
	file, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	if _, err := file.Write([]byte("[]")); err != nil {
		return err
	}

	c.log.Info("collection_initialized", slog.String("path", c.path))
	return nil
}

// # Queries

// LoadAll returns every document in the collection, deleted ones included,
// in file (insertion) order.
//
// On read or decode failure it returns an empty slice after logging and
// counting the degraded read.
func (c *Collection[T]) LoadAll() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loadLocked()
}

// ListActive returns the non-deleted documents, preserving original order.
func (c *Collection[T]) ListActive() []T {
	docs := c.LoadAll()

	active := make([]T, 0, len(docs))
	for _, doc := range docs {
		if !doc.DocDeleted() {
			active = append(active, doc)
		}
	}

	return active
}

// FindByID returns the first document with the given id, deleted or not.
// Absence is a valid answer, not an error.
func (c *Collection[T]) FindByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.loadLocked() {
		if doc.DocID() == id {
			return doc, true
		}
	}

	var zero T
	return zero, false
}

// # Mutations

// SaveAll overwrites the whole collection with the given sequence.
//
// The sequence is the unit of write: either the new array replaces the file or
// the previous contents stay intact.
func (c *Collection[T]) SaveAll(docs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.saveLocked(docs)
}

// Create appends the document and persists the collection.
//
// It defensively rejects a duplicate id (false return) even though natural-key
// uniqueness is the repositories' responsibility: id reuse would corrupt
// soft-delete bookkeeping and is never legitimate.
func (c *Collection[T]) Create(doc T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs := c.loadLocked()
	for _, existing := range docs {
		if existing.DocID() == doc.DocID() {
			c.log.Warn("duplicate_document_id_rejected", slog.String("id", doc.DocID()))
			return false
		}
	}

	c.saveLocked(append(docs, doc))
	return true
}

// Update replaces the first document with a matching id in full (not a
// field-merge) and persists. It reports whether a match was found.
func (c *Collection[T]) Update(id string, doc T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs := c.loadLocked()
	for i, existing := range docs {
		if existing.DocID() == id {
			docs[i] = doc
			c.saveLocked(docs)
			return true
		}
	}

	return false
}

// Delete marks the first matching document as soft-deleted and persists.
// The document remains in the backing file permanently.
func (c *Collection[T]) Delete(id string) bool {
	_, found := c.Modify(id, func(doc T) T {
		return doc.WithDeleted(true)
	})
	return found
}

// Modify applies fn to the first document with a matching id and persists the
// collection, all under the write lock. It returns the updated document.
//
// This is the read-modify-write primitive behind the counter increments; two
// concurrent Modify calls on the same collection serialize, so no update is
// lost.
func (c *Collection[T]) Modify(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs := c.loadLocked()
	for i, existing := range docs {
		if existing.DocID() == id {
			docs[i] = fn(existing)
			c.saveLocked(docs)
			return docs[i], true
		}
	}

	var zero T
	return zero, false
}

// # File Access

// loadLocked reads and decodes the backing file. Callers must hold at least
// the read lock.
func (c *Collection[T]) loadLocked() []T {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		degradedReads.WithLabelValues(c.name).Inc()
		c.log.Error("collection_read_failed", slog.Any("error", err))
		return []T{}
	}

	var docs []T
	if err := json.Unmarshal(raw, &docs); err != nil {
		degradedReads.WithLabelValues(c.name).Inc()
		c.log.Error("collection_decode_failed", slog.Any("error", err))
		return []T{}
	}

	if docs == nil {
		docs = []T{}
	}

	return docs
}

// saveLocked encodes docs and replaces the backing file via temp-then-rename.
// Callers must hold the write lock.
//
// Failures are logged and counted; the previous on-disk state stays visible to
// subsequent reads.
func (c *Collection[T]) saveLocked(docs []T) {
	raw, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		degradedWrites.WithLabelValues(c.name).Inc()
		c.log.Error("collection_encode_failed", slog.Any("error", err))
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		degradedWrites.WithLabelValues(c.name).Inc()
		c.log.Error("collection_tempfile_failed", slog.Any("error", err))
		return
	}

	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		degradedWrites.WithLabelValues(c.name).Inc()
		c.log.Error("collection_write_failed", slog.Any("error", err))
		return
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		degradedWrites.WithLabelValues(c.name).Inc()
		c.log.Error("collection_close_failed", slog.Any("error", err))
		return
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		degradedWrites.WithLabelValues(c.name).Inc()
		c.log.Error("collection_rename_failed", slog.Any("error", err))
		return
	}

	writesTotal.WithLabelValues(c.name).Inc()
}

// Copyright (c) 2026 Vidora. All rights reserved.

package jsonstore_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/platform/jsonstore"
)

// note is a minimal document type exercising the store contract.
type note struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	Hits      int    `json:"hits"`
	IsDeleted bool   `json:"is_deleted"`
}

func (n note) DocID() string      { return n.ID }
func (n note) DocDeleted() bool   { return n.IsDeleted }
func (n note) WithDeleted(d bool) note {
	n.IsDeleted = d
	return n
}

func newTestCollection(t *testing.T) (*jsonstore.Collection[note], string) {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	collection, err := jsonstore.New[note](dir, "notes.json", "notes", logger)
	require.NoError(t, err)

	return collection, filepath.Join(dir, "notes.json")
}

/*
TestCollection_Initialization verifies that an absent backing file is
materialized holding an empty array, and that initialization is idempotent.
*/
func TestCollection_Initialization(t *testing.T) {
	collection, path := newTestCollection(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
	assert.Empty(t, collection.LoadAll())

	// Re-creating over an existing file must not truncate it.
	collection.SaveAll([]note{{ID: "n1", Body: "kept"}})

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	again, err := jsonstore.New[note](filepath.Dir(path), "notes.json", "notes", logger)
	require.NoError(t, err)
	assert.Len(t, again.LoadAll(), 1)
}

/*
TestCollection_SoftDeleteVisibility checks the core soft-delete contract:
after Delete, ListActive excludes the document but FindByID still resolves it.
*/
func TestCollection_SoftDeleteVisibility(t *testing.T) {
	collection, _ := newTestCollection(t)

	require.True(t, collection.Create(note{ID: "n1", Body: "first"}))
	require.True(t, collection.Create(note{ID: "n2", Body: "second"}))

	require.True(t, collection.Delete("n1"))

	active := collection.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, "n2", active[0].ID)

	ghost, found := collection.FindByID("n1")
	require.True(t, found)
	assert.True(t, ghost.IsDeleted)

	// The document is never physically purged.
	assert.Len(t, collection.LoadAll(), 2)
}

/*
TestCollection_RoundTrip asserts that SaveAll(LoadAll()) is a content no-op.
*/
func TestCollection_RoundTrip(t *testing.T) {
	collection, _ := newTestCollection(t)

	seed := []note{
		{ID: "n1", Body: "alpha", Hits: 3},
		{ID: "n2", Body: "beta", IsDeleted: true},
	}
	collection.SaveAll(seed)

	loaded := collection.LoadAll()
	collection.SaveAll(loaded)

	assert.Equal(t, loaded, collection.LoadAll())
}

/*
TestCollection_DuplicateID verifies the defensive duplicate-id rejection,
including ids held by soft-deleted documents (no id reuse, ever).
*/
func TestCollection_DuplicateID(t *testing.T) {
	collection, _ := newTestCollection(t)

	require.True(t, collection.Create(note{ID: "n1"}))
	assert.False(t, collection.Create(note{ID: "n1", Body: "imposter"}))

	require.True(t, collection.Delete("n1"))
	assert.False(t, collection.Create(note{ID: "n1", Body: "revenant"}))

	assert.Len(t, collection.LoadAll(), 1)
}

/*
TestCollection_UpdateReplacesWholeDocument checks that Update is a full
replacement, not a field merge.
*/
func TestCollection_UpdateReplacesWholeDocument(t *testing.T) {
	collection, _ := newTestCollection(t)

	require.True(t, collection.Create(note{ID: "n1", Body: "old", Hits: 9}))
	require.True(t, collection.Update("n1", note{ID: "n1", Body: "new"}))

	updated, found := collection.FindByID("n1")
	require.True(t, found)
	assert.Equal(t, "new", updated.Body)
	assert.Zero(t, updated.Hits)

	assert.False(t, collection.Update("missing", note{ID: "missing"}))
}

/*
TestCollection_ConcurrentModify runs N concurrent increments against one
document and asserts none is lost — the per-collection lock at work.
*/
func TestCollection_ConcurrentModify(t *testing.T) {
	collection, _ := newTestCollection(t)
	require.True(t, collection.Create(note{ID: "n1"}))

	const workers = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, found := collection.Modify("n1", func(n note) note {
				n.Hits++
				return n
			})
			assert.True(t, found)
		}()
	}
	wg.Wait()

	final, found := collection.FindByID("n1")
	require.True(t, found)
	assert.Equal(t, workers, final.Hits)
}

/*
TestCollection_CorruptFileDegradesToEmpty verifies the documented degraded
read policy: a corrupt backing file reads as an empty collection.
*/
func TestCollection_CorruptFileDegradesToEmpty(t *testing.T) {
	collection, path := newTestCollection(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Empty(t, collection.LoadAll())
	assert.Empty(t, collection.ListActive())

	_, found := collection.FindByID("n1")
	assert.False(t, found)
}

/*
TestCollection_OrderPreserved checks that ListActive preserves insertion order
after interleaved deletes.
*/
func TestCollection_OrderPreserved(t *testing.T) {
	collection, _ := newTestCollection(t)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.True(t, collection.Create(note{ID: id}))
	}
	require.True(t, collection.Delete("b"))

	active := collection.ListActive()
	require.Len(t, active, 3)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
	assert.Equal(t, "d", active[2].ID)
}

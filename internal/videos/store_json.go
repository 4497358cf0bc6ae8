// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package videos (JSON) implements the storage layer for video metadata.

Counter increments go through the collection's locked read-modify-write
primitive, so concurrent views, likes, and dislikes never lose an update.
The context parameter is accepted for contract uniformity; flat-file access
does not observe cancellation.
*/
package videos

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/jsonstore"
	"github.com/vidora/vidora/pkg/slice"
)

// # Repository Implementation

// JSONVideoRepository implements [VideoRepository] over a JSON collection.
type JSONVideoRepository struct {
	collection *jsonstore.Collection[Video]
}

// NewVideoRepository opens (creating if necessary) the videos collection.
func NewVideoRepository(dataDir string, logger *slog.Logger) (*JSONVideoRepository, error) {
	collection, err := jsonstore.New[Video](dataDir, constants.FileVideos, "videos", logger)
	if err != nil {
		return nil, err
	}
	return &JSONVideoRepository{collection: collection}, nil
}

// AllActive lists every non-deleted video, private ones included.
func (repository *JSONVideoRepository) AllActive(_ context.Context) []Video {
	return repository.collection.ListActive()
}

// PublicActive lists every public, non-deleted video.
func (repository *JSONVideoRepository) PublicActive(_ context.Context) []Video {
	return slice.Filter(repository.collection.ListActive(), func(video Video) bool {
		return video.IsPublic
	})
}

// FindByID retrieves one active video by id, regardless of visibility.
func (repository *JSONVideoRepository) FindByID(_ context.Context, id string) (Video, bool) {
	video, found := repository.collection.FindByID(id)
	if !found || video.IsDeleted {
		return Video{}, false
	}
	return video, true
}

// ByOwner lists the active videos of one uploader, private ones included.
func (repository *JSONVideoRepository) ByOwner(_ context.Context, ownerID string) []Video {
	return slice.Filter(repository.collection.ListActive(), func(video Video) bool {
		return video.OwnerID == ownerID
	})
}

// ByCategory lists the active videos attached to one category.
func (repository *JSONVideoRepository) ByCategory(_ context.Context, categoryID string) []Video {
	return slice.Filter(repository.collection.ListActive(), func(video Video) bool {
		return video.CategoryID == categoryID
	})
}

// SearchByName finds public videos whose name contains the query.
func (repository *JSONVideoRepository) SearchByName(ctx context.Context, query string) []Video {
	needle := strings.ToLower(query)
	return slice.Filter(repository.PublicActive(ctx), func(video Video) bool {
		return strings.Contains(strings.ToLower(video.Name), needle)
	})
}

// SearchByDescription finds public videos whose description contains the query.
func (repository *JSONVideoRepository) SearchByDescription(ctx context.Context, query string) []Video {
	needle := strings.ToLower(query)
	return slice.Filter(repository.PublicActive(ctx), func(video Video) bool {
		return strings.Contains(strings.ToLower(video.Description), needle)
	})
}

// Create appends a new video document.
func (repository *JSONVideoRepository) Create(_ context.Context, video Video) bool {
	return repository.collection.Create(video)
}

// Update replaces a video document in full.
func (repository *JSONVideoRepository) Update(_ context.Context, video Video) bool {
	return repository.collection.Update(video.ID, video)
}

// SoftDelete flags a video as logically deleted.
func (repository *JSONVideoRepository) SoftDelete(_ context.Context, id string) bool {
	return repository.collection.Delete(id)
}

// AddView atomically increments the view counter.
func (repository *JSONVideoRepository) AddView(_ context.Context, id string) (Video, bool) {
	return repository.collection.Modify(id, func(video Video) Video {
		video.Views++
		return video
	})
}

// AddLike atomically increments the like counter.
func (repository *JSONVideoRepository) AddLike(_ context.Context, id string) (Video, bool) {
	return repository.collection.Modify(id, func(video Video) Video {
		video.Likes++
		return video
	})
}

// AddDislike atomically increments the dislike counter.
func (repository *JSONVideoRepository) AddDislike(_ context.Context, id string) (Video, bool) {
	return repository.collection.Modify(id, func(video Video) Video {
		video.Dislikes++
		return video
	})
}

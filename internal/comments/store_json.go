// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package comments (JSON) implements the storage layer for comments.

The context parameter is accepted for contract uniformity; flat-file access
does not observe cancellation.
*/
package comments

import (
	"context"
	"log/slog"

	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/jsonstore"
	"github.com/vidora/vidora/pkg/slice"
)

// # Repository Implementation

// JSONCommentRepository implements [CommentRepository] over a JSON collection.
type JSONCommentRepository struct {
	collection *jsonstore.Collection[Comment]
}

// NewCommentRepository opens (creating if necessary) the comments collection.
func NewCommentRepository(dataDir string, logger *slog.Logger) (*JSONCommentRepository, error) {
	collection, err := jsonstore.New[Comment](dataDir, constants.FileComments, "comments", logger)
	if err != nil {
		return nil, err
	}
	return &JSONCommentRepository{collection: collection}, nil
}

// FindByID retrieves one active comment by id.
func (repository *JSONCommentRepository) FindByID(_ context.Context, id string) (Comment, bool) {
	comment, found := repository.collection.FindByID(id)
	if !found || comment.IsDeleted {
		return Comment{}, false
	}
	return comment, true
}

// ByVideo lists the active comments under a video in storage order.
func (repository *JSONCommentRepository) ByVideo(_ context.Context, videoID string) []Comment {
	return slice.Filter(repository.collection.ListActive(), func(comment Comment) bool {
		return comment.VideoID == videoID
	})
}

// Roots lists the active thread-starting comments under a video.
func (repository *JSONCommentRepository) Roots(ctx context.Context, videoID string) []Comment {
	return slice.Filter(repository.ByVideo(ctx, videoID), func(comment Comment) bool {
		return comment.IsRoot()
	})
}

// RepliesOf lists the active direct replies to one comment.
func (repository *JSONCommentRepository) RepliesOf(_ context.Context, parentID string) []Comment {
	return slice.Filter(repository.collection.ListActive(), func(comment Comment) bool {
		return comment.ParentID != nil && *comment.ParentID == parentID
	})
}

// ByAuthor lists the active comments written by one user.
func (repository *JSONCommentRepository) ByAuthor(_ context.Context, authorID string) []Comment {
	return slice.Filter(repository.collection.ListActive(), func(comment Comment) bool {
		return comment.AuthorID == authorID
	})
}

// Create appends a new comment document.
func (repository *JSONCommentRepository) Create(_ context.Context, comment Comment) bool {
	return repository.collection.Create(comment)
}

// SoftDelete flags a comment as logically deleted.
func (repository *JSONCommentRepository) SoftDelete(_ context.Context, id string) bool {
	return repository.collection.Delete(id)
}

// Copyright (c) 2026 Vidora. All rights reserved.

package comments

import (
	"context"
	"log/slog"
	"sort"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/internal/users"
	"github.com/vidora/vidora/internal/videos"
	"github.com/vidora/vidora/pkg/timestamp"
	"github.com/vidora/vidora/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for comment threads.
//
// Every write validates its references first: the author must be an active
// account, the video must exist and be visible to the author, and a reply's
// parent must be an active comment under the same video.
type Service struct {
	commentRepository CommentRepository
	videoRepository   videos.VideoRepository
	userRepository    users.UserRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	commentRepo CommentRepository,
	videoRepo videos.VideoRepository,
	userRepo users.UserRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		commentRepository: commentRepo,
		videoRepository:   videoRepo,
		userRepository:    userRepo,
		logger:            logger,
	}
}

// # Thread Operations

// CreateInput defines the fields required to post a comment.
type CreateInput struct {
	VideoID  string
	ParentID *string // nil starts a new thread
	Text     string
}

/*
Create posts a comment or a reply.

Description: The video must exist and be visible to the author; a private
video takes comments only from its owner. A reply's parent must be an active
comment under the same video.

Parameters:
  - context: context.Context
  - authorID: string (Authenticated author)
  - input: CreateInput (Already validated by the transport layer)

Returns:
  - Comment: The persisted entity
  - error: apperr.InvalidReference on dangling references, apperr.NotFound
    on invisible videos
*/
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (Comment, error) {

	// Business: references are checked before any write
	if _, found := service.userRepository.FindByID(context, authorID); !found {
		return Comment{}, apperr.InvalidReference("user_id", "Author account does not exist")
	}

	video, found := service.videoRepository.FindByID(context, input.VideoID)
	if !found {
		return Comment{}, apperr.InvalidReference("video_id", "Video does not exist")
	}
	if !video.IsPublic && video.OwnerID != authorID {
		return Comment{}, apperr.NotFound("Video")
	}

	if input.ParentID != nil {
		parent, found := service.commentRepository.FindByID(context, *input.ParentID)
		if !found {
			return Comment{}, apperr.InvalidReference("parent_id", "Parent comment does not exist")
		}
		if parent.VideoID != input.VideoID {
			return Comment{}, apperr.InvalidReference("parent_id", "Parent comment belongs to a different video")
		}
	}

	comment := Comment{
		ID:        uuidv7.Must(),
		AuthorID:  authorID,
		VideoID:   input.VideoID,
		ParentID:  input.ParentID,
		Text:      input.Text,
		CreatedAt: timestamp.Now(),
	}

	if !service.commentRepository.Create(context, comment) {
		return Comment{}, apperr.Conflict("Comment identifier collision")
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("video_id", comment.VideoID),
		slog.Bool("reply", comment.ParentID != nil),
	)

	return comment, nil
}

/*
ThreadsFor reconstructs the discussion under a video.

Description: Roots appear in posting order; each root carries every reply in
its subtree, flattened chronologically. A reply whose chain leads to a
deleted root is omitted along with the rest of the orphaned subtree.

Parameters:
  - context: context.Context
  - videoID: string
  - viewer: *sec.AuthClaims (nil for anonymous requests)

Returns:
  - []Thread: Reconstructed threads
  - error: apperr.NotFound when the video is absent or not visible
*/
func (service *Service) ThreadsFor(context context.Context, videoID string, viewer *sec.AuthClaims) ([]Thread, error) {
	video, found := service.videoRepository.FindByID(context, videoID)
	if !found || !service.videoVisibleTo(video, viewer) {
		return nil, apperr.NotFound("Video")
	}

	all := service.commentRepository.ByVideo(context, videoID)

	byID := make(map[string]Comment, len(all))
	for _, comment := range all {
		byID[comment.ID] = comment
	}

	threads := make([]Thread, 0)
	replies := make(map[string][]Comment)

	for _, comment := range all {
		if comment.IsRoot() {
			threads = append(threads, Thread{Comment: comment, Replies: []Comment{}})
			continue
		}
		if rootID, ok := rootOf(comment, byID); ok {
			replies[rootID] = append(replies[rootID], comment)
		}
	}

	for i := range threads {
		thread := replies[threads[i].Comment.ID]
		sort.SliceStable(thread, func(a, b int) bool {
			return timestamp.Before(thread[a].CreatedAt, thread[b].CreatedAt)
		})
		if thread != nil {
			threads[i].Replies = thread
		}
	}

	return threads, nil
}

/*
ThreadOf returns one comment together with its direct replies.

Description: Works for roots and replies alike; a reply's thread holds
the reply itself and whatever was posted directly under it. Visibility
follows the video.

Parameters:
  - context: context.Context
  - commentID: string
  - viewer: *sec.AuthClaims (nil for anonymous requests)

Returns:
  - Thread: The comment with its direct replies in chronological order
  - error: apperr.NotFound when the comment or its video is absent or
    not visible
*/
func (service *Service) ThreadOf(context context.Context, commentID string, viewer *sec.AuthClaims) (Thread, error) {
	comment, found := service.commentRepository.FindByID(context, commentID)
	if !found {
		return Thread{}, apperr.NotFound("Comment")
	}

	video, found := service.videoRepository.FindByID(context, comment.VideoID)
	if !found || !service.videoVisibleTo(video, viewer) {
		return Thread{}, apperr.NotFound("Comment")
	}

	replies := service.commentRepository.RepliesOf(context, comment.ID)
	sort.SliceStable(replies, func(a, b int) bool {
		return timestamp.Before(replies[a].CreatedAt, replies[b].CreatedAt)
	})

	return Thread{Comment: comment, Replies: replies}, nil
}

/*
Mine lists the authenticated user's own comments.

Parameters:
  - context: context.Context
  - authorID: string

Returns:
  - []Comment: The author's active comments in posting order
*/
func (service *Service) Mine(context context.Context, authorID string) []Comment {
	return service.commentRepository.ByAuthor(context, authorID)
}

/*
Delete performs a soft-deletion of a comment.

Description: Permitted for the comment's author, the video's owner, and
moderators. Deleting a root hides its whole subtree from thread
reconstruction; the replies stay stored.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, id string) error {
	comment, found := service.commentRepository.FindByID(context, id)
	if !found {
		return apperr.NotFound("Comment")
	}

	if !service.canRemove(context, comment, actor) {
		return apperr.Forbidden("Only the author may delete this comment")
	}

	if !service.commentRepository.SoftDelete(context, id) {
		return apperr.NotFound("Comment")
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", id),
		slog.String("actor_id", actor.UserID),
	)

	return nil
}

// # Helpers

// rootOf walks the parent chain up to the thread root. It reports false when
// the chain leaves the active set, which orphans the subtree.
func rootOf(comment Comment, byID map[string]Comment) (string, bool) {
	current := comment
	for current.ParentID != nil {
		parent, ok := byID[*current.ParentID]
		if !ok {
			return "", false
		}
		current = parent
	}
	return current.ID, true
}

// videoVisibleTo mirrors the video package's visibility rule.
func (service *Service) videoVisibleTo(video videos.Video, viewer *sec.AuthClaims) bool {
	if video.IsPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.UserID == video.OwnerID || sec.UserRole(viewer.Role).AtLeast(sec.RoleModerator)
}

// canRemove reports whether the actor may delete the comment.
func (service *Service) canRemove(context context.Context, comment Comment, actor *sec.AuthClaims) bool {
	if actor == nil {
		return false
	}
	if actor.UserID == comment.AuthorID || sec.UserRole(actor.Role).AtLeast(sec.RoleModerator) {
		return true
	}

	// The uploader moderates the discussion under their own video.
	video, found := service.videoRepository.FindByID(context, comment.VideoID)
	return found && video.OwnerID == actor.UserID
}

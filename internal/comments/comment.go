// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package comments manages the discussion threads under videos.

A comment either starts a thread (no parent) or replies into one. Reply
references are validated at the service layer: the parent must be an active
comment under the same video. Thread reconstruction groups every reply under
its root comment in chronological order.

# Architecture

  - Entities: Comment; Thread is the reconstructed transport view.
  - Storage: JSON document collection (comments.json).
  - References: user_id, video_id, and parent_id are validated at the
    service layer before a write; storage stays permissive.
*/
package comments

import "context"

// # Domain Entities

// Comment represents a single stored comment.
type Comment struct {
	ID        string  `json:"id"`
	AuthorID  string  `json:"user_id"`
	VideoID   string  `json:"video_id"`
	ParentID  *string `json:"parent_id,omitempty"` // nil for thread roots
	Text      string  `json:"text"`
	CreatedAt string  `json:"date"`
	IsDeleted bool    `json:"is_deleted"`
}

// DocID returns the document identity for collection storage.
func (c Comment) DocID() string { return c.ID }

// DocDeleted reports the soft-deletion flag.
func (c Comment) DocDeleted() bool { return c.IsDeleted }

// WithDeleted returns a copy with the soft-deletion flag set.
func (c Comment) WithDeleted(deleted bool) Comment {
	c.IsDeleted = deleted
	return c
}

// IsRoot reports whether the comment starts a thread.
func (c Comment) IsRoot() bool { return c.ParentID == nil }

// Thread is one root comment with its replies in chronological order.
type Thread struct {
	Comment Comment   `json:"comment"`
	Replies []Comment `json:"replies"`
}

// # Repository Contracts

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	/*
		FindByID retrieves one active comment by id.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - Comment: Loaded entity
		  - bool: False when absent or deleted
	*/
	FindByID(context context.Context, id string) (Comment, bool)

	/*
		ByVideo lists the active comments under a video in storage order.

		Parameters:
		  - context: context.Context
		  - videoID: string

		Returns:
		  - []Comment: Roots and replies, unthreaded
	*/
	ByVideo(context context.Context, videoID string) []Comment

	/*
		Roots lists the active thread-starting comments under a video.

		Parameters:
		  - context: context.Context
		  - videoID: string

		Returns:
		  - []Comment: Root comments in posting order
	*/
	Roots(context context.Context, videoID string) []Comment

	/*
		RepliesOf lists the active direct replies to one comment.

		Parameters:
		  - context: context.Context
		  - parentID: string

		Returns:
		  - []Comment: Direct replies in posting order
	*/
	RepliesOf(context context.Context, parentID string) []Comment

	/*
		ByAuthor lists the active comments written by one user.

		Parameters:
		  - context: context.Context
		  - authorID: string

		Returns:
		  - []Comment: The author's comments in storage order
	*/
	ByAuthor(context context.Context, authorID string) []Comment

	/*
		Create appends a new comment document.

		Parameters:
		  - context: context.Context
		  - comment: Comment (Fully populated entity)

		Returns:
		  - bool: False when the id already exists
	*/
	Create(context context.Context, comment Comment) bool

	/*
		SoftDelete flags a comment as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: False when the comment does not exist
	*/
	SoftDelete(context context.Context, id string) bool
}

// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package videos owns the video catalogue: upload metadata, visibility,
engagement counters, search, and the ranked discovery endpoints.

# Architecture

  - Entities: Video.
  - Storage: JSON document collection (videos.json).
  - Ranking: Delegates scoring and ordering to the ranking package; this
    package only assembles snapshots and applies visibility rules.
  - References: user_id and category_id are validated at the service layer
    before a write; storage stays permissive.

# Visibility

A private video is visible to its owner and to moderators. Every public
listing, search, and ranking surface excludes private and deleted videos.
*/
package videos

import "context"

// # Domain Entities

// Video represents stored video metadata. The binary content itself lives in
// object storage and is out of scope here.
type Video struct {
	ID          string `json:"id"`
	OwnerID     string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"date"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
	Views       int    `json:"views"`
	IsPublic    bool   `json:"is_public"`
	CategoryID  string `json:"category_id,omitempty"`
	IsDeleted   bool   `json:"is_deleted"`
}

// DocID returns the document identity for collection storage.
func (v Video) DocID() string { return v.ID }

// DocDeleted reports the soft-deletion flag.
func (v Video) DocDeleted() bool { return v.IsDeleted }

// WithDeleted returns a copy with the soft-deletion flag set.
func (v Video) WithDeleted(deleted bool) Video {
	v.IsDeleted = deleted
	return v
}

// # Ranking Snapshot View

// The accessors below satisfy the ranking package's read-only video view.

func (v Video) Key() string          { return v.ID }
func (v Video) Category() string     { return v.CategoryID }
func (v Video) ViewCount() int       { return v.Views }
func (v Video) LikeCount() int       { return v.Likes }
func (v Video) DislikeCount() int    { return v.Dislikes }
func (v Video) CreatedStamp() string { return v.CreatedAt }
func (v Video) Public() bool         { return v.IsPublic }
func (v Video) Deleted() bool        { return v.IsDeleted }

// # Repository Contracts

// VideoRepository defines the persistence contract for video metadata.
type VideoRepository interface {
	/*
		AllActive lists every non-deleted video, private ones included.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Video: Active videos in storage order
	*/
	AllActive(context context.Context) []Video

	/*
		PublicActive lists every public, non-deleted video.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Video: Publicly visible videos in storage order
	*/
	PublicActive(context context.Context) []Video

	/*
		FindByID retrieves one active video by id, regardless of visibility.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - Video: Loaded entity
		  - bool: False when absent or deleted
	*/
	FindByID(context context.Context, id string) (Video, bool)

	/*
		ByOwner lists the active videos of one uploader, private ones included.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []Video: The owner's videos in storage order
	*/
	ByOwner(context context.Context, ownerID string) []Video

	/*
		ByCategory lists the active videos attached to one category.

		Parameters:
		  - context: context.Context
		  - categoryID: string

		Returns:
		  - []Video: Category members in storage order, private ones included
	*/
	ByCategory(context context.Context, categoryID string) []Video

	/*
		SearchByName finds public videos whose name contains the query,
		case-insensitively.

		Parameters:
		  - context: context.Context
		  - query: string

		Returns:
		  - []Video: Matches in storage order
	*/
	SearchByName(context context.Context, query string) []Video

	/*
		SearchByDescription finds public videos whose description contains the
		query, case-insensitively.

		Parameters:
		  - context: context.Context
		  - query: string

		Returns:
		  - []Video: Matches in storage order
	*/
	SearchByDescription(context context.Context, query string) []Video

	/*
		Create appends a new video document.

		Parameters:
		  - context: context.Context
		  - video: Video (Fully populated entity)

		Returns:
		  - bool: False when the id already exists
	*/
	Create(context context.Context, video Video) bool

	/*
		Update replaces a video document in full.

		Parameters:
		  - context: context.Context
		  - video: Video (Hydrated entity with changes)

		Returns:
		  - bool: False when the video does not exist
	*/
	Update(context context.Context, video Video) bool

	/*
		SoftDelete flags a video as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: False when the video does not exist
	*/
	SoftDelete(context context.Context, id string) bool

	/*
		AddView atomically increments the view counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - Video: The updated entity
		  - bool: False when the video does not exist
	*/
	AddView(context context.Context, id string) (Video, bool)

	/*
		AddLike atomically increments the like counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - Video: The updated entity
		  - bool: False when the video does not exist
	*/
	AddLike(context context.Context, id string) (Video, bool)

	/*
		AddDislike atomically increments the dislike counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - Video: The updated entity
		  - bool: False when the video does not exist
	*/
	AddDislike(context context.Context, id string) (Video, bool)
}

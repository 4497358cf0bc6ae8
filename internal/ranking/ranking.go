// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package ranking is the pure scoring and ordering engine over video snapshots.

It never touches the document store: every function takes a caller-supplied
slice, ranks it, and returns a new slice, which keeps the engine lock-free,
deterministic, and independently testable. Running against a snapshot while
the store mutates is explicitly fine — callers accept stale-but-consistent
reads.

# Determinism

All sorts are stable with respect to the input order, so equal scores keep
their original relative position. Given identical input, every function
returns an identical ordered result.
*/
package ranking

import "sort"

// Video is the read-only view the engine needs from a video document.
//
// The concrete video type satisfies it with value-receiver accessors; the
// engine deliberately has no dependency on the videos package.
type Video interface {
	// Key returns the video id.
	Key() string

	// Category returns the category id, or "" when the video has none.
	Category() string

	ViewCount() int
	LikeCount() int
	DislikeCount() int

	// CreatedStamp returns the fixed-width UTC creation timestamp; its
	// lexicographic order is its chronological order.
	CreatedStamp() string

	Public() bool
	Deleted() bool
}

// SortKey selects the ordering for [ByCategorySorted].
type SortKey string

const (
	SortViews  SortKey = "views"
	SortLikes  SortKey = "likes"
	SortRecent SortKey = "recent"
)

// NoCategory keys the group of videos without a category in [TopPerCategory].
// They are never silently dropped.
const NoCategory = "none"

// Score computes the popularity score of a single video:
//
//	views*0.7 + (likes/max(dislikes,1))*0.3
//
// Views dominate as a raw-reach signal; the like/dislike ratio contributes a
// damped engagement signal, with zero dislikes treated as one to guard the
// division. A deliberately simple, explainable linear score — not a learned
// model.
func Score(video Video) float64 {
	dislikes := video.DislikeCount()
	if dislikes < 1 {
		dislikes = 1
	}

	engagement := float64(video.LikeCount()) / float64(dislikes)
	return float64(video.ViewCount())*0.7 + engagement*0.3
}

// Trending returns the top public, non-deleted videos by score.
func Trending[T Video](videos []T, limit int) []T {
	visible := visibleOnly(videos)

	sort.SliceStable(visible, func(i, j int) bool {
		return Score(visible[i]) > Score(visible[j])
	})

	return head(visible, limit)
}

// RecommendationsFor returns same-category videos ranked by score, excluding
// the source video itself.
//
// # Fallbacks
//
// When the source video does not exist (or is deleted), has no category, or
// its category holds no other visible videos, the result falls back to
// [Trending] over the whole snapshot.
func RecommendationsFor[T Video](videoID string, videos []T, limit int) []T {
	var source T
	found := false
	for _, v := range videos {
		if v.Key() == videoID && !v.Deleted() {
			source = v
			found = true
			break
		}
	}

	if !found || source.Category() == "" {
		return Trending(videos, limit)
	}

	sameCategory := make([]T, 0)
	for _, v := range visibleOnly(videos) {
		if v.Category() == source.Category() && v.Key() != videoID {
			sameCategory = append(sameCategory, v)
		}
	}

	if len(sameCategory) == 0 {
		return Trending(videos, limit)
	}

	sort.SliceStable(sameCategory, func(i, j int) bool {
		return Score(sameCategory[i]) > Score(sameCategory[j])
	})

	return head(sameCategory, limit)
}

// ByCategorySorted returns the visible videos of one category ordered by the
// chosen key, descending.
func ByCategorySorted[T Video](categoryID string, videos []T, limit int, key SortKey) []T {
	inCategory := make([]T, 0)
	for _, v := range visibleOnly(videos) {
		if v.Category() == categoryID {
			inCategory = append(inCategory, v)
		}
	}

	switch key {
	case SortLikes:
		sort.SliceStable(inCategory, func(i, j int) bool {
			return inCategory[i].LikeCount() > inCategory[j].LikeCount()
		})
	case SortRecent:
		// Fixed-width timestamps make string comparison chronological.
		sort.SliceStable(inCategory, func(i, j int) bool {
			return inCategory[i].CreatedStamp() > inCategory[j].CreatedStamp()
		})
	default:
		sort.SliceStable(inCategory, func(i, j int) bool {
			return inCategory[i].ViewCount() > inCategory[j].ViewCount()
		})
	}

	return head(inCategory, limit)
}

// CategoryGroup is one category with its top videos, as emitted by
// [TopPerCategory].
type CategoryGroup[T Video] struct {
	CategoryID string `json:"category_id"`
	TopVideos  []T    `json:"top_videos"`
}

// TopPerCategory groups the visible videos by category and keeps the topN by
// views inside each group.
//
// Group order is the first-occurrence order of each category in the input —
// deterministic but otherwise arbitrary. Videos without a category form their
// own group under [NoCategory].
func TopPerCategory[T Video](videos []T, topN int) []CategoryGroup[T] {
	order := make([]string, 0)
	byCategory := make(map[string][]T)

	for _, v := range visibleOnly(videos) {
		category := v.Category()
		if category == "" {
			category = NoCategory
		}

		if _, seen := byCategory[category]; !seen {
			order = append(order, category)
		}
		byCategory[category] = append(byCategory[category], v)
	}

	groups := make([]CategoryGroup[T], 0, len(order))
	for _, category := range order {
		members := byCategory[category]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].ViewCount() > members[j].ViewCount()
		})

		groups = append(groups, CategoryGroup[T]{
			CategoryID: category,
			TopVideos:  head(members, topN),
		})
	}

	return groups
}

// visibleOnly filters to public, non-deleted videos, preserving order.
func visibleOnly[T Video](videos []T) []T {
	visible := make([]T, 0, len(videos))
	for _, v := range videos {
		if v.Public() && !v.Deleted() {
			visible = append(visible, v)
		}
	}
	return visible
}

// head returns the first limit elements. A non-positive limit yields an
// empty slice.
func head[T any](items []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}
	if limit > len(items) {
		limit = len(items)
	}
	return items[:limit]
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is an immutable rating event. Value is always within [MinRating, MaxRating].
type Rating struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	UserID    uuid.UUID
	Value     float64
	CreatedAt time.Time
}

// Favorite marks an entry as favorited by a user. Unique on (UserID, EntryID).
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	EntryID   uuid.UUID
	CreatedAt time.Time
}

// RecentView is one view event. Rows are never deduplicated.
type RecentView struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	EntryID  uuid.UUID
	ViewedAt time.Time
}

// Comment is a posted comment on an entry. Text is immutable once stored.
type Comment struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	UserID      uuid.UUID
	Text        string
	Upvotes     int
	CreatedAt   time.Time
	AuthorEmail string
}

// MaxRecentViews caps the recent-view list returned to a user.
const MaxRecentViews = 20

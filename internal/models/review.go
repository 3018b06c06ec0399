// internal/models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is game-scoped, at most one per (user, game). Replies are a
// two-level tree: Review -> ReviewReply -> ReviewNestedReply. The
// depth cap is structural, there is no deeper table to attach to.
type Review struct {
	BaseModel
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_game"`
	GameID  uuid.UUID `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_game"`
	Rating  int       `json:"rating" gorm:"not null"`
	Comment string    `json:"comment" gorm:"type:text;not null"`

	User    *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes   []ReviewLike        `json:"likes,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	Replies []ReviewReply       `json:"replies,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

type ReviewReply struct {
	BaseModel
	ReviewID uuid.UUID `json:"review_id" gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Comment  string    `json:"comment" gorm:"type:text;not null"`

	User          *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes         []ReviewReplyLike   `json:"likes,omitempty" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE"`
	NestedReplies []ReviewNestedReply `json:"nested_replies,omitempty" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE"`
}

type ReviewNestedReply struct {
	BaseModel
	ReplyID uuid.UUID `json:"reply_id" gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Comment string    `json:"comment" gorm:"type:text;not null"`

	User  *User                   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes []ReviewNestedReplyLike `json:"likes,omitempty" gorm:"foreignKey:NestedReplyID;constraint:OnDelete:CASCADE"`
}

// Like rows, one per (node, user). Toggle semantics: delete when
// present, insert when absent. Hard-deleted, no soft-delete column.
type ReviewLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	ReviewID  uuid.UUID `json:"review_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_like"`
}

type ReviewReplyLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	ReplyID   uuid.UUID `json:"reply_id" gorm:"type:uuid;not null;uniqueIndex:idx_reply_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reply_like"`
}

type ReviewNestedReplyLike struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt     time.Time `json:"created_at"`
	NestedReplyID uuid.UUID `json:"nested_reply_id" gorm:"type:uuid;not null;uniqueIndex:idx_nested_reply_like"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_nested_reply_like"`
}

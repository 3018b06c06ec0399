// internal/models/blog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Blog struct {
	BaseModel
	Title          string         `json:"title" gorm:"size:255;not null"`
	Slug           string         `json:"slug" gorm:"size:280;uniqueIndex;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Content        string         `json:"content" gorm:"type:text;not null"`
	BlogType       string         `json:"blog_type" gorm:"size:100;index"`
	FrontpageImage string         `json:"frontpage_image" gorm:"size:512"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	AuthorID       uuid.UUID      `json:"author_id" gorm:"type:uuid;not null;index"`
	Status         BlogStatus     `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Tags           pq.StringArray `json:"tags" gorm:"type:text[]"`
	Views          int64          `json:"views" gorm:"default:0"`
	Featured       bool           `json:"featured" gorm:"default:false;index"`
	ReadTime       int            `json:"read_time" gorm:"default:0"`

	Author       *User         `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	RelatedGames []Game        `json:"related_games,omitempty" gorm:"many2many:blog_related_games"`
	Likes        []BlogLike    `json:"likes,omitempty" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	Comments     []BlogComment `json:"comments,omitempty" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
}

// MaxBlogImages caps the images array per post.
const MaxBlogImages = 10

// Blog comment tree: BlogComment -> BlogCommentReply, depth capped by
// schema. Replies have no children.
type BlogComment struct {
	BaseModel
	BlogID  uuid.UUID `json:"blog_id" gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Content string    `json:"content" gorm:"type:text;not null"`

	User    *User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes   []BlogCommentLike  `json:"likes,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	Replies []BlogCommentReply `json:"replies,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

type BlogCommentReply struct {
	BaseModel
	CommentID uuid.UUID `json:"comment_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`

	User  *User                  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes []BlogCommentReplyLike `json:"likes,omitempty" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE"`
}

type BlogLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	BlogID    uuid.UUID `json:"blog_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_like"`
}

type BlogCommentLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	CommentID uuid.UUID `json:"comment_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_comment_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_comment_like"`
}

type BlogCommentReplyLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	ReplyID   uuid.UUID `json:"reply_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_reply_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_reply_like"`
}

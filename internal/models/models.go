package models

import "time"

// Tag is a per-user label attached to saved links. Slugs are unique per user.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_slug" json:"user_id"`
	Slug   string `gorm:"type:varchar(80);not null;uniqueIndex:idx_tags_user_slug" json:"slug"`
	Name   string `gorm:"type:varchar(64);not null" json:"name"`
}

// LinkTag is the link_tags join row. Links themselves live outside this
// service; only the association is needed to count a tag's links.
type LinkTag struct {
	LinkID uint `gorm:"primaryKey;autoIncrement:false" json:"link_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

func (LinkTag) TableName() string {
	return "link_tags"
}

type ResponseTag struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count uint   `json:"count"`
}

type CreateTagsRequest struct {
	Names []string `json:"names" binding:"required,min=1,max=50,dive,required,max=64,no_html"`
}

// SitePage is a rendered /site/ document.
type SitePage struct {
	Slug      string    `json:"slug"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	HTML      string    `json:"html,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

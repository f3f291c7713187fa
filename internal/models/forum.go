package models

// Post is an anonymous forum post. DeviceID is the opaque client-generated
// token that authorizes retraction; nil on rows created before the column
// existed, and a nil owner never authorizes anyone.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	DeviceID  *string   `json:"device_id"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Comment belongs to a Post and is removed with it.
type Comment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PostID    uint    `gorm:"not null;index" json:"post_id"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	DeviceID  *string `json:"device_id"`
	CreatedAt int64   `gorm:"autoCreateTime" json:"created_at"`
}

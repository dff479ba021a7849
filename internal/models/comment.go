package models

// Comment belongs to a post. Comments of a deleted post are removed by the
// content service, not by the database.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Text     string `gorm:"type:text;not null" json:"text"`
}

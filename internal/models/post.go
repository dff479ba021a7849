package models

// DateLayout is the human readable publication date, e.g. "March 04, 2024".
const DateLayout = "January 02, 2006"

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	Title    string `gorm:"uniqueIndex;size:250;not null" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	Date     string `gorm:"size:250;not null" json:"date"` // set once at creation
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"column:img_url;size:250;not null" json:"img_url"`
}

func (Post) TableName() string {
	return "blog_posts"
}

package models

type Book struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string  `json:"title" gorm:"not null"`
	Author        string  `json:"author" gorm:"not null"`
	Genre         *string `json:"genre" gorm:"index"`
	YearPublished *int    `json:"year_published"`
	Summary       *string `json:"summary"`
	TextContent   *string `json:"text_content" gorm:"type:text"`

	// association
	Reviews []Review `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}

package models

type Review struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID     int64   `json:"book_id" gorm:"not null;index"`
	UserID     int64   `json:"user_id" gorm:"not null"`
	ReviewText string  `json:"review_text" gorm:"not null"`
	Rating     float64 `json:"rating" gorm:"not null"`
}

func (Review) TableName() string {
	return "reviews"
}

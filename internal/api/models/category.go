package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
}

func (Category) TableName() string {
	return "categories"
}

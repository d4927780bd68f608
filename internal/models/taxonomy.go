package models

// CategoryModel groups publications by subject area.
type CategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel is a free-form label attached to publications.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }

package model

// Collection is a named grouping of skins. There is no ownership column: any
// authenticated user may mutate any collection.
type Collection struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nome;size:255;not null" json:"nome"`
}

func (Collection) TableName() string {
	return "colecoes"
}

package model

// Skin references its owning collection by id only. The reference is not
// declared as a database foreign key, so deleting a collection leaves its
// skins in place; listings exclude them through the join.
type Skin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"column:nome;size:255;not null" json:"nome"`
	CollectionID uint   `gorm:"column:colecao_id" json:"colecao_id"`
}

func (Skin) TableName() string {
	return "skins"
}

// SkinListing is the joined row shape returned by skin listings: the skin
// plus the name of the collection it belongs to.
type SkinListing struct {
	ID             uint   `json:"id"`
	Name           string `gorm:"column:nome" json:"nome"`
	CollectionName string `gorm:"column:colecao_nome" json:"colecao_nome"`
}

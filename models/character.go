package models

type Character struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:120;not null" json:"name"`
	Age       *string `gorm:"size:80" json:"age"`
	Gender    string  `gorm:"size:80" json:"gender"`
	Height    string  `gorm:"size:80" json:"height"`
	HairColor string  `gorm:"size:80" json:"hair_color"`
	EyeColor  string  `gorm:"size:80" json:"eye_color"`
}

func (Character) TableName() string {
	return "characters"
}

func (c Character) GetSearchDocument() *SearchDocument {
	return &SearchDocument{
		Kind: KindCharacter,
		ID:   c.ID,
		Name: c.Name,
	}
}

package models

type Planet struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:120;not null" json:"name"`
	Climate    string `gorm:"size:120" json:"climate"`
	Terrain    string `gorm:"size:120" json:"terrain"`
	Population string `gorm:"size:80" json:"population"`
	Diameter   string `gorm:"size:80" json:"diameter"`
	Gravity    string `gorm:"size:80" json:"gravity"`
}

func (Planet) TableName() string {
	return "planets"
}

func (p Planet) GetSearchDocument() *SearchDocument {
	return &SearchDocument{
		Kind: KindPlanet,
		ID:   p.ID,
		Name: p.Name,
	}
}

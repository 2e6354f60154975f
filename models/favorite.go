package models

// Favorite rows are presence-only join records. The composite unique index on each
// table is what rejects a second insert for the same (user, target) pair.

type FavoriteCharacter struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_character" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
	CharacterID uint       `gorm:"column:characters_id;not null;uniqueIndex:idx_user_character" json:"characters_id"`
	Character   *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
}

func (FavoriteCharacter) TableName() string {
	return "favorites_characters"
}

type FavoritePlanet struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"not null;uniqueIndex:idx_user_planet" json:"user_id"`
	User     *User   `gorm:"foreignKey:UserID" json:"-"`
	PlanetID uint    `gorm:"column:planets_id;not null;uniqueIndex:idx_user_planet" json:"planets_id"`
	Planet   *Planet `gorm:"foreignKey:PlanetID" json:"planet,omitempty"`
}

func (FavoritePlanet) TableName() string {
	return "favorites_planets"
}

type FavoriteVehicle struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_user_vehicle" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"-"`
	VehicleID uint     `gorm:"column:vehicles_id;not null;uniqueIndex:idx_user_vehicle" json:"vehicles_id"`
	Vehicle   *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (FavoriteVehicle) TableName() string {
	return "favorites_vehicles"
}

package models

type Vehicle struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:120;not null" json:"name"`
	Model         string `gorm:"size:120" json:"model"`
	Manufacturer  string `gorm:"size:120" json:"manufacturer"`
	VehicleClass  string `gorm:"size:80" json:"vehicle_class"`
	Passengers    string `gorm:"size:80" json:"passengers"`
	CostInCredits string `gorm:"size:80" json:"cost_in_credits"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v Vehicle) GetSearchDocument() *SearchDocument {
	return &SearchDocument{
		Kind: KindVehicle,
		ID:   v.ID,
		Name: v.Name,
	}
}

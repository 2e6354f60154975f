package models

import "strings"

// Kind names one of the three catalog tables.
type Kind string

const (
	KindCharacter Kind = "character"
	KindPlanet    Kind = "planet"
	KindVehicle   Kind = "vehicle"
)

var Kinds = []Kind{KindCharacter, KindPlanet, KindVehicle}

// Title returns the kind with its first letter upper-cased, as used in response messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}

	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Catalog is satisfied by the read-only catalog rows.
type Catalog interface {
	Character | Planet | Vehicle
	GetSearchDocument() *SearchDocument
}

func KindOf[T Catalog]() Kind {
	var v T

	switch any(v).(type) {
	case Character:
		return KindCharacter
	case Planet:
		return KindPlanet
	default:
		return KindVehicle
	}
}

// SearchDocument is the trimmed catalog row written to the search index.
type SearchDocument struct {
	Kind Kind   `json:"kind"`
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

package catalog

import (
	"time"
)

type Artist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"type:varchar(255);not null" json:"nombre"`

	// FoldName(Name), written by the stores on every save. Unique among live
	// rows (see database.Migrate).
	NameKey string `gorm:"type:varchar(255);not null;default:''" json:"-"`

	IsDeleted bool `gorm:"not null;default:false;index" json:"isDeleted"`

	CreatedAt time.Time `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

// ArtistInput is the body of POST /artistas.
type ArtistInput struct {
	Name      string `json:"nombre" validate:"notblank"`
	IsDeleted *bool  `json:"isDeleted"`
}

// ArtistPatch is the body of PUT and PATCH /artistas/:id.
type ArtistPatch struct {
	Name      *string `json:"nombre" validate:"omitnil,notblank"`
	IsDeleted *bool   `json:"isDeleted"`
}

func NewArtist(in ArtistInput, now time.Time) Artist {
	a := Artist{
		Name:      normalizeName(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsDeleted != nil {
		a.IsDeleted = *in.IsDeleted
	}
	return a
}

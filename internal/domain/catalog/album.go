package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Album struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"column:uuid;type:uuid;not null;uniqueIndex:idx_albums_uuid" json:"uuid"`

	Name  string  `gorm:"type:varchar(255);not null" json:"nombre"`
	Genre string  `gorm:"type:varchar(32);not null;default:''" json:"genero"`
	Price float64 `gorm:"not null" json:"precio"`

	// FoldName(Name), written by the stores on every save
	NameKey string `gorm:"type:varchar(255);not null;default:'';index" json:"-"`

	// bound at creation, never reassigned
	ArtistID uint   `gorm:"not null;index" json:"-"`
	Artist   Artist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	IsDeleted bool `gorm:"not null;default:false;index" json:"isDeleted"`

	CreatedAt time.Time `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

// AlbumInput is the body of POST /albumes. Artist is the artist's name.
type AlbumInput struct {
	Name   string   `json:"nombre" validate:"notblank"`
	Artist string   `json:"artista" validate:"notblank"`
	Genre  string   `json:"genero" validate:"genre"`
	Price  *float64 `json:"precio" validate:"required,gte=0"`
}

// AlbumPatch is the body of PUT and PATCH /albumes/:id. There is no artist
// field: an album keeps the artist it was created with.
type AlbumPatch struct {
	Name  *string  `json:"nombre" validate:"omitnil,notblank"`
	Genre *string  `json:"genero" validate:"omitnil,genre"`
	Price *float64 `json:"precio" validate:"omitnil,gte=0"`
}

// NewAlbum builds an unsaved album owned by artist. The input must already
// have passed ValidateAlbumInput.
func NewAlbum(in AlbumInput, artist Artist, now time.Time) Album {
	genre, _ := CanonicalGenre(in.Genre)
	a := Album{
		UUID:      uuid.New(),
		Name:      normalizeName(in.Name),
		Genre:     genre,
		ArtistID:  artist.ID,
		Artist:    artist,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Price != nil {
		a.Price = *in.Price
	}
	return a
}

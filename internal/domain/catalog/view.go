package catalog

import (
	"time"

	"github.com/google/uuid"
)

// AlbumView is what clients see of an album: the artist is flattened to its name.
type AlbumView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"nombre"`
	Artist    string    `json:"artista"`
	Genre     string    `json:"genero"`
	Price     float64   `json:"precio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UUID      uuid.UUID `json:"uuid"`
}

// ArtistView never carries the artist's albums.
type ArtistView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"nombre"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToAlbumView(a Album) AlbumView {
	return AlbumView{
		ID:        a.ID,
		Name:      a.Name,
		Artist:    a.Artist.Name,
		Genre:     a.Genre,
		Price:     a.Price,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		UUID:      a.UUID,
	}
}

func ToAlbumViews(in []Album) []AlbumView {
	out := make([]AlbumView, 0, len(in))
	for _, a := range in {
		out = append(out, ToAlbumView(a))
	}
	return out
}

func ToArtistView(a Artist) ArtistView {
	return ArtistView{
		ID:        a.ID,
		Name:      a.Name,
		IsDeleted: a.IsDeleted,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToArtistViews(in []Artist) []ArtistView {
	out := make([]ArtistView, 0, len(in))
	for _, a := range in {
		out = append(out, ToArtistView(a))
	}
	return out
}

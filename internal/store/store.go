// Package store declares the persistence contracts the catalog services are
// written against. gormstore and memstore implement them.
//
// Lookups by key return (nil, nil) when nothing live matches, except
// ArtistStore.FindByName which returns a catalog NotFound error. Deleted rows
// (IsDeleted) are invisible to every read.
package store

import (
	"context"

	"music-catalog/internal/domain/catalog"

	"github.com/google/uuid"
)

type ArtistStore interface {
	// FindAll lists live artists; a non-blank name keeps only names containing it.
	FindAll(ctx context.Context, name string) ([]catalog.Artist, error)
	// FindByName is an exact, case-insensitive match.
	FindByName(ctx context.Context, name string) (*catalog.Artist, error)
	FindByID(ctx context.Context, id uint) (*catalog.Artist, error)
	// Save inserts when a.ID is zero and updates otherwise. It returns
	// Conflict when another live artist has the same name, and when an
	// update soft-deletes an artist that still has live albums.
	Save(ctx context.Context, a *catalog.Artist) error
	// DeleteByID soft-deletes. NotFound when absent, Conflict while live
	// albums reference the artist.
	DeleteByID(ctx context.Context, id uint) error
}

type AlbumStore interface {
	FindAll(ctx context.Context) ([]catalog.Album, error)
	FindByNameContains(ctx context.Context, name string) ([]catalog.Album, error)
	FindByArtistNameContains(ctx context.Context, artist string) ([]catalog.Album, error)
	FindByNameAndArtistContains(ctx context.Context, name, artist string) ([]catalog.Album, error)
	FindByArtistID(ctx context.Context, artistID uint) ([]catalog.Album, error)
	FindByID(ctx context.Context, id uint) (*catalog.Album, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*catalog.Album, error)
	// Save inserts when a.ID is zero, checking that a.ArtistID names a live
	// artist, and otherwise updates name, genre, price and updatedAt.
	Save(ctx context.Context, a *catalog.Album) error
	// DeleteByID soft-deletes without any referential check.
	DeleteByID(ctx context.Context, id uint) error
}

package service

import (
	"context"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"
)

type seedAlbum struct {
	artist string
	name   string
	genre  string
	price  float64
}

var seedCatalog = []seedAlbum{
	{artist: "The Beatles", name: "Abbey Road", genre: "Rock", price: 19.99},
	{artist: "Michael Jackson", name: "Thriller", genre: "Pop", price: 29.99},
}

// Seed loads the demo catalog into an empty store. A store that already has
// artists is left alone.
func Seed(ctx context.Context, artists *ArtistService, albums *AlbumService, log *logger.Logger) error {
	existing, err := artists.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("seed skipped, catalog not empty", "artists", len(existing))
		return nil
	}

	for _, s := range seedCatalog {
		if _, err := artists.Create(ctx, catalog.ArtistInput{Name: s.artist}); err != nil && !catalog.IsConflict(err) {
			return err
		}
		price := s.price
		if _, err := albums.Create(ctx, catalog.AlbumInput{
			Name:   s.name,
			Artist: s.artist,
			Genre:  s.genre,
			Price:  &price,
		}); err != nil {
			return err
		}
	}
	log.Info("seeded catalog", "albums", len(seedCatalog))
	return nil
}

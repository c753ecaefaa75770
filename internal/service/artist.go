package service

import (
	"context"
	"time"

	"music-catalog/internal/cache"
	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/store"
)

type ArtistService struct {
	artists store.ArtistStore
	albums  store.AlbumStore
	cache   *cache.Coherent
	log     *logger.Logger
	now     func() time.Time
}

// NewArtistService wires the artist handlers. albums is read to drop cached
// album views when an artist is renamed. c may be nil to run uncached.
func NewArtistService(artists store.ArtistStore, albums store.AlbumStore, c *cache.Coherent, baseLog *logger.Logger) *ArtistService {
	return &ArtistService{
		artists: artists,
		albums:  albums,
		cache:   c,
		log:     baseLog.With("service", "ArtistService"),
		now:     time.Now,
	}
}

func (s *ArtistService) List(ctx context.Context, name string) ([]catalog.ArtistView, error) {
	list, err := s.artists.FindAll(ctx, name)
	if err != nil {
		return nil, err
	}
	return catalog.ToArtistViews(list), nil
}

func (s *ArtistService) Get(ctx context.Context, id uint) (*catalog.ArtistView, error) {
	var v catalog.ArtistView
	if s.cache.Get(ctx, cache.ArtistIDKey(id), &v) {
		return &v, nil
	}

	ticket := s.cache.Begin()
	a, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, catalog.NotFound("artist with id %d not found", id)
	}
	v = catalog.ToArtistView(*a)
	s.cache.Fill(ctx, ticket, v, cache.ArtistIDKey(id))
	return &v, nil
}

func (s *ArtistService) Create(ctx context.Context, in catalog.ArtistInput) (*catalog.ArtistView, error) {
	if err := catalog.ValidateArtistInput(in); err != nil {
		return nil, err
	}

	ticket := s.cache.Begin()
	a := catalog.NewArtist(in, s.now())
	if err := s.artists.Save(ctx, &a); err != nil {
		return nil, err
	}

	v := catalog.ToArtistView(a)
	if !a.IsDeleted {
		s.cache.Store(ctx, ticket, v, cache.ArtistIDKey(a.ID))
	}
	s.log.Info("artist created", "artist_id", a.ID)
	return &v, nil
}

// Update merges p into the stored artist. Setting isDeleted goes through the
// same album guard as Delete.
func (s *ArtistService) Update(ctx context.Context, id uint, p catalog.ArtistPatch) (*catalog.ArtistView, error) {
	if err := catalog.ValidateArtistPatch(p); err != nil {
		return nil, err
	}

	ticket := s.cache.Begin()
	existing, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, catalog.NotFound("artist with id %d not found", id)
	}

	merged := catalog.MergeArtist(*existing, p, s.now())
	if err := s.artists.Save(ctx, &merged); err != nil {
		return nil, err
	}

	v := catalog.ToArtistView(merged)
	if merged.IsDeleted {
		s.cache.Evict(ctx, cache.ArtistIDKey(id))
	} else {
		s.cache.Store(ctx, ticket, v, cache.ArtistIDKey(id))
	}
	if merged.Name != existing.Name {
		s.evictAlbumsOf(ctx, id)
	}
	s.log.Info("artist updated", "artist_id", id)
	return &v, nil
}

func (s *ArtistService) Delete(ctx context.Context, id uint) error {
	if err := s.artists.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.cache.Evict(ctx, cache.ArtistIDKey(id))
	s.log.Info("artist deleted", "artist_id", id)
	return nil
}

// evictAlbumsOf drops cached album views that embed the artist's old name.
func (s *ArtistService) evictAlbumsOf(ctx context.Context, artistID uint) {
	if s.cache == nil {
		return
	}
	list, err := s.albums.FindByArtistID(ctx, artistID)
	if err != nil {
		s.log.Warn("list albums for eviction failed", "artist_id", artistID, "error", err)
		return
	}
	keys := make([]string, 0, 2*len(list))
	for _, al := range list {
		keys = append(keys, albumKeys(catalog.ToAlbumView(al))...)
	}
	s.cache.Evict(ctx, keys...)
}

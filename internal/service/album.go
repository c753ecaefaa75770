package service

import (
	"context"
	"strings"
	"time"

	"music-catalog/internal/cache"
	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/store"

	"github.com/google/uuid"
)

type AlbumService struct {
	albums  store.AlbumStore
	artists store.ArtistStore
	cache   *cache.Coherent
	log     *logger.Logger
	now     func() time.Time
}

// NewAlbumService wires the album handlers. c may be nil to run uncached.
func NewAlbumService(albums store.AlbumStore, artists store.ArtistStore, c *cache.Coherent, baseLog *logger.Logger) *AlbumService {
	return &AlbumService{
		albums:  albums,
		artists: artists,
		cache:   c,
		log:     baseLog.With("service", "AlbumService"),
		now:     time.Now,
	}
}

func albumKeys(v catalog.AlbumView) []string {
	return []string{cache.AlbumIDKey(v.ID), cache.AlbumUUIDKey(v.UUID.String())}
}

// List picks the store query from which filters are non-blank.
func (s *AlbumService) List(ctx context.Context, name, artist string) ([]catalog.AlbumView, error) {
	name, artist = strings.TrimSpace(name), strings.TrimSpace(artist)

	var (
		list []catalog.Album
		err  error
	)
	switch {
	case name != "" && artist != "":
		list, err = s.albums.FindByNameAndArtistContains(ctx, name, artist)
	case name != "":
		list, err = s.albums.FindByNameContains(ctx, name)
	case artist != "":
		list, err = s.albums.FindByArtistNameContains(ctx, artist)
	default:
		list, err = s.albums.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return catalog.ToAlbumViews(list), nil
}

func (s *AlbumService) Get(ctx context.Context, id uint) (*catalog.AlbumView, error) {
	var v catalog.AlbumView
	if s.cache.Get(ctx, cache.AlbumIDKey(id), &v) {
		return &v, nil
	}

	ticket := s.cache.Begin()
	a, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, catalog.NotFound("album with id %d not found", id)
	}
	v = catalog.ToAlbumView(*a)
	s.cache.Fill(ctx, ticket, v, albumKeys(v)...)
	return &v, nil
}

// GetByToken looks an album up by its public uuid. A token that is not a
// uuid is a BadRequest, not a miss.
func (s *AlbumService) GetByToken(ctx context.Context, token string) (*catalog.AlbumView, error) {
	id, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, catalog.BadRequest("%q is not a valid album uuid", token)
	}

	var v catalog.AlbumView
	if s.cache.Get(ctx, cache.AlbumUUIDKey(id.String()), &v) {
		return &v, nil
	}

	ticket := s.cache.Begin()
	a, err := s.albums.FindByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, catalog.NotFound("album with uuid %s not found", id)
	}
	v = catalog.ToAlbumView(*a)
	s.cache.Fill(ctx, ticket, v, albumKeys(v)...)
	return &v, nil
}

func (s *AlbumService) Create(ctx context.Context, in catalog.AlbumInput) (*catalog.AlbumView, error) {
	if err := catalog.ValidateAlbumInput(in); err != nil {
		return nil, err
	}

	artist, err := s.artists.FindByName(ctx, in.Artist)
	if err != nil {
		return nil, err
	}

	ticket := s.cache.Begin()
	a := catalog.NewAlbum(in, *artist, s.now())
	if err := s.albums.Save(ctx, &a); err != nil {
		return nil, err
	}

	v := catalog.ToAlbumView(a)
	s.cache.Store(ctx, ticket, v, albumKeys(v)...)
	s.log.Info("album created", "album_id", v.ID, "artist_id", artist.ID)
	return &v, nil
}

// Update merges p into the stored album. PUT and PATCH both land here.
func (s *AlbumService) Update(ctx context.Context, id uint, p catalog.AlbumPatch) (*catalog.AlbumView, error) {
	if err := catalog.ValidateAlbumPatch(p); err != nil {
		return nil, err
	}

	ticket := s.cache.Begin()
	existing, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, catalog.NotFound("album with id %d not found", id)
	}

	merged := catalog.MergeAlbum(*existing, p, s.now())
	if err := s.albums.Save(ctx, &merged); err != nil {
		return nil, err
	}

	// id and uuid never change, so the new view replaces the old one in place
	v := catalog.ToAlbumView(merged)
	s.cache.Store(ctx, ticket, v, albumKeys(v)...)
	s.log.Info("album updated", "album_id", v.ID)
	return &v, nil
}

func (s *AlbumService) Delete(ctx context.Context, id uint) error {
	existing, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return catalog.NotFound("album with id %d not found", id)
	}
	if err := s.albums.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, albumKeys(catalog.ToAlbumView(*existing))...)
	s.log.Info("album deleted", "album_id", id)
	return nil
}

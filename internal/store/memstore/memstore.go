// Package memstore keeps the catalog in process memory. Artists and albums
// share one lock so the cross-entity checks (album insert needs a live
// artist, artist delete needs no live albums) run atomically.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	artists map[uint]catalog.Artist
	albums  map[uint]catalog.Album

	nextArtistID uint
	nextAlbumID  uint

	log *logger.Logger
}

func New(baseLog *logger.Logger) *Store {
	return &Store{
		artists: make(map[uint]catalog.Artist),
		albums:  make(map[uint]catalog.Album),
		log:     baseLog.With("repo", "memstore"),
	}
}

func (s *Store) Artists() *ArtistStore { return &ArtistStore{s: s} }
func (s *Store) Albums() *AlbumStore   { return &AlbumStore{s: s} }

// liveArtistNamed must be called with mu held.
func (s *Store) liveArtistNamed(name string, exceptID uint) (catalog.Artist, bool) {
	key := catalog.FoldName(name)
	for _, a := range s.artists {
		if a.IsDeleted || a.ID == exceptID {
			continue
		}
		if a.NameKey == key {
			return a, true
		}
	}
	return catalog.Artist{}, false
}

// hasLiveAlbums must be called with mu held.
func (s *Store) hasLiveAlbums(artistID uint) bool {
	for _, al := range s.albums {
		if !al.IsDeleted && al.ArtistID == artistID {
			return true
		}
	}
	return false
}

// albumsWhere returns live albums matching keep, ordered by id, with their
// artist attached. Must be called with mu held.
func (s *Store) albumsWhere(keep func(al catalog.Album, artist catalog.Artist) bool) []catalog.Album {
	out := make([]catalog.Album, 0)
	for _, al := range s.albums {
		if al.IsDeleted {
			continue
		}
		artist := s.artists[al.ArtistID]
		if keep != nil && !keep(al, artist) {
			continue
		}
		al.Artist = artist
		out = append(out, al)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// contains matches needle against a stored NameKey.
func contains(key, needle string) bool {
	return strings.Contains(key, catalog.FoldName(needle))
}

type ArtistStore struct {
	s *Store
}

func (r *ArtistStore) FindAll(ctx context.Context, name string) ([]catalog.Artist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	filter := strings.TrimSpace(name)
	out := make([]catalog.Artist, 0)
	for _, a := range r.s.artists {
		if a.IsDeleted {
			continue
		}
		if filter != "" && !contains(a.NameKey, filter) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ArtistStore) FindByName(ctx context.Context, name string) (*catalog.Artist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.liveArtistNamed(name, 0)
	if !ok {
		return nil, catalog.NotFound("artist %q not found", name)
	}
	return &a, nil
}

func (r *ArtistStore) FindByID(ctx context.Context, id uint) (*catalog.Artist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.artists[id]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	return &a, nil
}

func (r *ArtistStore) Save(ctx context.Context, a *catalog.Artist) error {
	if a == nil {
		return nil
	}
	a.NameKey = catalog.FoldName(a.Name)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.ID != 0 {
		current, ok := r.s.artists[a.ID]
		if !ok || current.IsDeleted {
			return catalog.NotFound("artist with id %d not found", a.ID)
		}
		if a.IsDeleted && r.s.hasLiveAlbums(a.ID) {
			return catalog.Conflict("artist with id %d still has albums", a.ID)
		}
	}
	if !a.IsDeleted {
		if _, taken := r.s.liveArtistNamed(a.Name, a.ID); taken {
			return catalog.Conflict("an artist named %q already exists", a.Name)
		}
	}

	if a.ID == 0 {
		r.s.nextArtistID++
		a.ID = r.s.nextArtistID
	}
	r.s.artists[a.ID] = *a
	r.s.log.Debug("artist saved", "artist_id", a.ID)
	return nil
}

func (r *ArtistStore) DeleteByID(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.artists[id]
	if !ok || a.IsDeleted {
		return catalog.NotFound("artist with id %d not found", id)
	}
	if r.s.hasLiveAlbums(id) {
		return catalog.Conflict("artist with id %d still has albums", id)
	}
	a.IsDeleted = true
	r.s.artists[id] = a
	r.s.log.Debug("artist deleted", "artist_id", id)
	return nil
}

type AlbumStore struct {
	s *Store
}

func (r *AlbumStore) FindAll(ctx context.Context) ([]catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.albumsWhere(nil), nil
}

func (r *AlbumStore) FindByNameContains(ctx context.Context, name string) ([]catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.albumsWhere(func(al catalog.Album, _ catalog.Artist) bool {
		return contains(al.NameKey, name)
	}), nil
}

func (r *AlbumStore) FindByArtistNameContains(ctx context.Context, artist string) ([]catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.albumsWhere(func(_ catalog.Album, ar catalog.Artist) bool {
		return contains(ar.NameKey, artist)
	}), nil
}

func (r *AlbumStore) FindByNameAndArtistContains(ctx context.Context, name, artist string) ([]catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.albumsWhere(func(al catalog.Album, ar catalog.Artist) bool {
		return contains(al.NameKey, name) && contains(ar.NameKey, artist)
	}), nil
}

func (r *AlbumStore) FindByArtistID(ctx context.Context, artistID uint) ([]catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.albumsWhere(func(al catalog.Album, _ catalog.Artist) bool {
		return al.ArtistID == artistID
	}), nil
}

func (r *AlbumStore) FindByID(ctx context.Context, id uint) (*catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	al, ok := r.s.albums[id]
	if !ok || al.IsDeleted {
		return nil, nil
	}
	al.Artist = r.s.artists[al.ArtistID]
	return &al, nil
}

func (r *AlbumStore) FindByUUID(ctx context.Context, id uuid.UUID) (*catalog.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, al := range r.s.albums {
		if al.UUID == id && !al.IsDeleted {
			al.Artist = r.s.artists[al.ArtistID]
			return &al, nil
		}
	}
	return nil, nil
}

func (r *AlbumStore) Save(ctx context.Context, a *catalog.Album) error {
	if a == nil {
		return nil
	}
	a.NameKey = catalog.FoldName(a.Name)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.ID == 0 {
		artist, ok := r.s.artists[a.ArtistID]
		if !ok || artist.IsDeleted {
			return catalog.NotFound("artist with id %d not found", a.ArtistID)
		}
		for _, other := range r.s.albums {
			if other.UUID == a.UUID {
				return catalog.Conflict("album uuid %s already exists", a.UUID)
			}
		}
		r.s.nextAlbumID++
		a.ID = r.s.nextAlbumID
		a.Artist = artist
		r.s.albums[a.ID] = *a
		r.s.log.Debug("album created", "album_id", a.ID)
		return nil
	}

	current, ok := r.s.albums[a.ID]
	if !ok || current.IsDeleted {
		return catalog.NotFound("album with id %d not found", a.ID)
	}
	current.Name = a.Name
	current.NameKey = a.NameKey
	current.Genre = a.Genre
	current.Price = a.Price
	current.UpdatedAt = a.UpdatedAt
	r.s.albums[a.ID] = current

	current.Artist = r.s.artists[current.ArtistID]
	*a = current
	r.s.log.Debug("album updated", "album_id", a.ID)
	return nil
}

func (r *AlbumStore) DeleteByID(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	al, ok := r.s.albums[id]
	if !ok {
		return nil
	}
	al.IsDeleted = true
	r.s.albums[id] = al
	r.s.log.Debug("album deleted", "album_id", id)
	return nil
}

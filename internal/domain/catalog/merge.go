package catalog

import (
	"strings"
	"time"
)

// MergeAlbum applies patch over existing. Nil patch fields keep the existing
// value; id, uuid, createdAt and the owning artist always come from existing.
// UpdatedAt is set to now even when nothing else changes.
func MergeAlbum(existing Album, patch AlbumPatch, now time.Time) Album {
	out := existing
	if patch.Name != nil {
		out.Name = normalizeName(*patch.Name)
	}
	if patch.Genre != nil && strings.TrimSpace(*patch.Genre) != "" {
		if g, ok := CanonicalGenre(*patch.Genre); ok {
			out.Genre = g
		}
	}
	if patch.Price != nil {
		out.Price = *patch.Price
	}
	out.UpdatedAt = now
	return out
}

// MergeArtist is MergeAlbum for artists.
func MergeArtist(existing Artist, patch ArtistPatch, now time.Time) Artist {
	out := existing
	if patch.Name != nil {
		out.Name = normalizeName(*patch.Name)
	}
	if patch.IsDeleted != nil {
		out.IsDeleted = *patch.IsDeleted
	}
	out.UpdatedAt = now
	return out
}

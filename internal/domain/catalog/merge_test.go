package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleAlbum() Album {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	artist := Artist{ID: 7, Name: "The Beatles", CreatedAt: created, UpdatedAt: created}
	return Album{
		ID:        1,
		UUID:      uuid.MustParse("57727bc2-0c1c-494e-bbaf-e952a778e478"),
		Name:      "Abbey Road",
		Genre:     "Rock",
		Price:     19.99,
		ArtistID:  artist.ID,
		Artist:    artist,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMergeAlbumEmptyPatch(t *testing.T) {
	e := sampleAlbum()
	now := e.UpdatedAt.Add(time.Hour)

	got := MergeAlbum(e, AlbumPatch{}, now)
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("updatedAt: got %v want %v", got.UpdatedAt, now)
	}
	got.UpdatedAt = e.UpdatedAt
	if got != e {
		t.Fatalf("empty patch changed the album:\n got %+v\nwant %+v", got, e)
	}
}

func TestMergeAlbumPriceOnly(t *testing.T) {
	e := sampleAlbum()
	now := e.UpdatedAt.Add(time.Minute)

	got := MergeAlbum(e, AlbumPatch{Price: ptr(500.0)}, now)
	if got.Price != 500.0 {
		t.Fatalf("price: got %v", got.Price)
	}
	if got.Name != e.Name || got.Genre != e.Genre {
		t.Fatalf("name/genre changed: %+v", got)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("createdAt changed: %v", got.CreatedAt)
	}
	if !got.UpdatedAt.After(e.UpdatedAt) {
		t.Fatalf("updatedAt did not advance: %v", got.UpdatedAt)
	}
}

func TestMergeAlbumKeepsIdentity(t *testing.T) {
	e := sampleAlbum()
	got := MergeAlbum(e, AlbumPatch{Name: ptr("  Let It Be "), Genre: ptr("pop"), Price: ptr(0.0)}, time.Now())

	if got.ID != e.ID || got.UUID != e.UUID || !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("identity changed: %+v", got)
	}
	if got.ArtistID != e.ArtistID || got.Artist != e.Artist {
		t.Fatalf("artist changed: %+v", got.Artist)
	}
	if got.Name != "Let It Be" || got.Genre != "Pop" || got.Price != 0 {
		t.Fatalf("fields not applied: %+v", got)
	}
}

func TestMergeAlbumBlankGenreKeepsExisting(t *testing.T) {
	e := sampleAlbum()
	got := MergeAlbum(e, AlbumPatch{Genre: ptr("  ")}, time.Now())
	if got.Genre != "Rock" {
		t.Fatalf("genre: got %q", got.Genre)
	}
}

func TestMergeArtist(t *testing.T) {
	created := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	e := Artist{ID: 3, Name: "Queen", CreatedAt: created, UpdatedAt: created}
	now := created.Add(24 * time.Hour)

	got := MergeArtist(e, ArtistPatch{}, now)
	if got.Name != "Queen" || got.IsDeleted || got.ID != 3 || !got.CreatedAt.Equal(created) {
		t.Fatalf("empty patch changed the artist: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("updatedAt: got %v", got.UpdatedAt)
	}

	got = MergeArtist(e, ArtistPatch{Name: ptr("Queen II"), IsDeleted: ptr(true)}, now)
	if got.Name != "Queen II" || !got.IsDeleted {
		t.Fatalf("patch not applied: %+v", got)
	}
}

func TestNewAlbum(t *testing.T) {
	now := time.Now().UTC()
	artist := Artist{ID: 2, Name: "Michael Jackson"}
	a := NewAlbum(AlbumInput{Name: " Thriller ", Artist: "michael jackson", Genre: "POP", Price: ptr(29.99)}, artist, now)

	if a.ID != 0 {
		t.Fatalf("id must be store-assigned, got %d", a.ID)
	}
	if a.UUID == uuid.Nil {
		t.Fatalf("uuid not minted")
	}
	if a.Name != "Thriller" || a.Genre != "Pop" || a.Price != 29.99 {
		t.Fatalf("fields: %+v", a)
	}
	if a.ArtistID != 2 || a.Artist.Name != "Michael Jackson" {
		t.Fatalf("artist binding: %+v", a)
	}
	if !a.CreatedAt.Equal(now) || !a.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps: %v %v", a.CreatedAt, a.UpdatedAt)
	}

	b := NewAlbum(AlbumInput{Name: "Other", Price: ptr(1.0)}, artist, now)
	if b.UUID == a.UUID {
		t.Fatalf("uuids must differ")
	}
}

func TestToAlbumViewFlattensArtist(t *testing.T) {
	v := ToAlbumView(sampleAlbum())
	if v.Artist != "The Beatles" || v.ID != 1 || v.Name != "Abbey Road" {
		t.Fatalf("view: %+v", v)
	}
}

// Package storetest holds the behaviour every store.ArtistStore /
// store.AlbumStore pair must share, run against each backend from its own
// package tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/store"

	"github.com/google/uuid"
)

// Factory returns a fresh, empty store pair for one subtest.
type Factory func(t *testing.T) (store.ArtistStore, store.AlbumStore)

var epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func Run(t *testing.T, newStores Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, artists store.ArtistStore, albums store.AlbumStore)
	}{
		{"ArtistNameUniqueIgnoringCase", testArtistNameUnique},
		{"ArtistUpdateKeepsOwnName", testArtistUpdateKeepsOwnName},
		{"ArtistUpdateUnknown", testArtistUpdateUnknown},
		{"ArtistFindByName", testArtistFindByName},
		{"ArtistFindAllFilter", testArtistFindAllFilter},
		{"ArtistDeleteGuard", testArtistDeleteGuard},
		{"ArtistSoftDeleteViaSaveGuarded", testArtistSoftDeleteViaSave},
		{"ArtistNameReusableAfterDelete", testArtistNameReusable},
		{"AlbumInsertNeedsLiveArtist", testAlbumInsertNeedsArtist},
		{"AlbumLookups", testAlbumLookups},
		{"AlbumFilters", testAlbumFilters},
		{"FiltersFoldAccentedNames", testFiltersFoldAccents},
		{"AlbumUpdateTouchesOnlyMutableFields", testAlbumUpdate},
		{"AlbumDeleteHidesRow", testAlbumDelete},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			artists, albums := newStores(t)
			tc.fn(t, artists, albums)
		})
	}
}

func mustArtist(t *testing.T, s store.ArtistStore, name string) *catalog.Artist {
	t.Helper()
	a := catalog.NewArtist(catalog.ArtistInput{Name: name}, epoch)
	if err := s.Save(context.Background(), &a); err != nil {
		t.Fatalf("save artist %q: %v", name, err)
	}
	if a.ID == 0 {
		t.Fatalf("save artist %q: id not assigned", name)
	}
	return &a
}

func mustAlbum(t *testing.T, s store.AlbumStore, artist *catalog.Artist, name, genre string, price float64) *catalog.Album {
	t.Helper()
	al := catalog.NewAlbum(catalog.AlbumInput{
		Name:   name,
		Artist: artist.Name,
		Genre:  genre,
		Price:  &price,
	}, *artist, epoch)
	if err := s.Save(context.Background(), &al); err != nil {
		t.Fatalf("save album %q: %v", name, err)
	}
	if al.ID == 0 {
		t.Fatalf("save album %q: id not assigned", name)
	}
	return &al
}

func albumNames(list []catalog.Album) []string {
	out := make([]string, len(list))
	for i, al := range list {
		out[i] = al.Name
	}
	return out
}

func sameNames(got []catalog.Album, want ...string) bool {
	names := albumNames(got)
	if len(names) != len(want) {
		return false
	}
	for i := range want {
		if names[i] != want[i] {
			return false
		}
	}
	return true
}

func testArtistNameUnique(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	mustArtist(t, artists, "Queen")

	dup := catalog.NewArtist(catalog.ArtistInput{Name: "queen"}, epoch)
	err := artists.Save(context.Background(), &dup)
	if !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict for duplicate name, got %v", err)
	}

	// folding covers letters outside ASCII too
	bjork := mustArtist(t, artists, "Ñu Björk")
	dup = catalog.NewArtist(catalog.ArtistInput{Name: "ñu björk"}, epoch)
	if err := artists.Save(context.Background(), &dup); !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict for accented duplicate, got %v", err)
	}
	got, err := artists.FindByName(context.Background(), "ÑU BJÖRK")
	if err != nil {
		t.Fatalf("FindByName accented: %v", err)
	}
	if got.ID != bjork.ID || got.Name != "Ñu Björk" {
		t.Fatalf("FindByName accented: got %+v", got)
	}

	all, err := artists.FindAll(context.Background(), "")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 artists after rejected duplicates, got %d", len(all))
	}
}

func testArtistUpdateKeepsOwnName(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "Queen")
	mustArtist(t, artists, "Blur")

	same := catalog.MergeArtist(*a, catalog.ArtistPatch{Name: strPtr("QUEEN")}, epoch.Add(time.Hour))
	if err := artists.Save(ctx, &same); err != nil {
		t.Fatalf("renaming to own name in another case: %v", err)
	}

	clash := catalog.MergeArtist(same, catalog.ArtistPatch{Name: strPtr("blur")}, epoch.Add(2*time.Hour))
	if err := artists.Save(ctx, &clash); !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict renaming onto another artist, got %v", err)
	}

	got, err := artists.FindByID(ctx, a.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v %v", got, err)
	}
	if got.Name != "QUEEN" {
		t.Fatalf("expected stored name QUEEN, got %q", got.Name)
	}
	if !got.UpdatedAt.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("updatedAt not persisted: %v", got.UpdatedAt)
	}
}

func testArtistUpdateUnknown(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	ghost := catalog.Artist{ID: 999, Name: "Ghost", CreatedAt: epoch, UpdatedAt: epoch}
	if err := artists.Save(context.Background(), &ghost); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound updating unknown artist, got %v", err)
	}
}

func testArtistFindByName(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	ctx := context.Background()
	want := mustArtist(t, artists, "The Beatles")

	got, err := artists.FindByName(ctx, "the beatles")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("expected id %d, got %d", want.ID, got.ID)
	}

	if _, err := artists.FindByName(ctx, "Beatles"); !catalog.IsNotFound(err) {
		t.Fatalf("partial name must not match, got %v", err)
	}

	missing, err := artists.FindByID(ctx, want.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("FindByID miss: expected nil, nil; got %v, %v", missing, err)
	}
}

func testArtistFindAllFilter(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	mustArtist(t, artists, "The Beatles")
	mustArtist(t, artists, "Michael Jackson")
	mustArtist(t, artists, "The Jackson 5")
	mustArtist(t, artists, "100%_Pure")

	cases := []struct {
		filter string
		want   []string
	}{
		{"", []string{"The Beatles", "Michael Jackson", "The Jackson 5", "100%_Pure"}},
		{"  ", []string{"The Beatles", "Michael Jackson", "The Jackson 5", "100%_Pure"}},
		{"jackson", []string{"Michael Jackson", "The Jackson 5"}},
		{"THE", []string{"The Beatles", "The Jackson 5"}},
		{"%_", []string{"100%_Pure"}},
		{"_", []string{"100%_Pure"}},
		{"nobody", nil},
	}
	for _, tc := range cases {
		got, err := artists.FindAll(context.Background(), tc.filter)
		if err != nil {
			t.Fatalf("FindAll(%q): %v", tc.filter, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("FindAll(%q): expected %d artists, got %d", tc.filter, len(tc.want), len(got))
		}
		for i := range tc.want {
			if got[i].Name != tc.want[i] {
				t.Fatalf("FindAll(%q)[%d]: expected %q, got %q", tc.filter, i, tc.want[i], got[i].Name)
			}
		}
	}
}

func testArtistDeleteGuard(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "Queen")
	one := mustAlbum(t, albums, a, "A Night at the Opera", "Rock", 9.99)
	two := mustAlbum(t, albums, a, "Jazz", "", 7.5)

	if err := artists.DeleteByID(ctx, a.ID); !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict deleting artist with albums, got %v", err)
	}

	if err := albums.DeleteByID(ctx, one.ID); err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if err := artists.DeleteByID(ctx, a.ID); !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict while one album remains, got %v", err)
	}

	if err := albums.DeleteByID(ctx, two.ID); err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if err := artists.DeleteByID(ctx, a.ID); err != nil {
		t.Fatalf("delete artist after its albums: %v", err)
	}

	got, err := artists.FindByID(ctx, a.ID)
	if err != nil || got != nil {
		t.Fatalf("deleted artist still visible: %v, %v", got, err)
	}
	if err := artists.DeleteByID(ctx, a.ID); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}
}

func testArtistSoftDeleteViaSave(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "Queen")
	al := mustAlbum(t, albums, a, "Jazz", "Rock", 7.5)

	retire := catalog.MergeArtist(*a, catalog.ArtistPatch{IsDeleted: boolPtr(true)}, epoch.Add(time.Hour))
	if err := artists.Save(ctx, &retire); !catalog.IsConflict(err) {
		t.Fatalf("expected Conflict soft-deleting artist with albums, got %v", err)
	}

	if err := albums.DeleteByID(ctx, al.ID); err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if err := artists.Save(ctx, &retire); err != nil {
		t.Fatalf("soft-delete via save: %v", err)
	}
	got, err := artists.FindByID(ctx, a.ID)
	if err != nil || got != nil {
		t.Fatalf("soft-deleted artist still visible: %v, %v", got, err)
	}
}

func testArtistNameReusable(t *testing.T, artists store.ArtistStore, _ store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "Queen")
	if err := artists.DeleteByID(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again := mustArtist(t, artists, "QUEEN")
	if again.ID == a.ID {
		t.Fatalf("expected a new id for the recreated artist")
	}
}

func testAlbumInsertNeedsArtist(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	price := 1.0
	orphan := catalog.NewAlbum(catalog.AlbumInput{Name: "Nowhere", Price: &price},
		catalog.Artist{ID: 4242, Name: "Ghost Band"}, epoch)
	if err := albums.Save(ctx, &orphan); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown artist, got %v", err)
	}

	gone := mustArtist(t, artists, "Gone")
	if err := artists.DeleteByID(ctx, gone.ID); err != nil {
		t.Fatalf("delete artist: %v", err)
	}
	late := catalog.NewAlbum(catalog.AlbumInput{Name: "Too Late", Price: &price}, *gone, epoch)
	if err := albums.Save(ctx, &late); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound for deleted artist, got %v", err)
	}

	all, err := albums.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected inserts left %d rows", len(all))
	}
}

func testAlbumLookups(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "The Beatles")
	al := mustAlbum(t, albums, a, "Abbey Road", "Rock", 19.99)

	byID, err := albums.FindByID(ctx, al.ID)
	if err != nil || byID == nil {
		t.Fatalf("FindByID: %v, %v", byID, err)
	}
	if byID.UUID != al.UUID {
		t.Fatalf("uuid mismatch: %s vs %s", byID.UUID, al.UUID)
	}
	if byID.Artist.Name != "The Beatles" {
		t.Fatalf("artist not attached: %+v", byID.Artist)
	}

	byToken, err := albums.FindByUUID(ctx, al.UUID)
	if err != nil || byToken == nil {
		t.Fatalf("FindByUUID: %v, %v", byToken, err)
	}
	if byToken.ID != al.ID {
		t.Fatalf("FindByUUID returned id %d, want %d", byToken.ID, al.ID)
	}

	if miss, err := albums.FindByID(ctx, al.ID+100); err != nil || miss != nil {
		t.Fatalf("FindByID miss: expected nil, nil; got %v, %v", miss, err)
	}
	if miss, err := albums.FindByUUID(ctx, uuid.New()); err != nil || miss != nil {
		t.Fatalf("FindByUUID miss: expected nil, nil; got %v, %v", miss, err)
	}
}

func testAlbumFilters(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	beatles := mustArtist(t, artists, "The Beatles")
	mj := mustArtist(t, artists, "Michael Jackson")
	mustAlbum(t, albums, beatles, "Abbey Road", "Rock", 19.99)
	mustAlbum(t, albums, beatles, "Let It Be", "Rock", 15)
	mustAlbum(t, albums, mj, "Thriller", "Pop", 29.99)
	mustAlbum(t, albums, mj, "Bad", "Pop", 12)

	byName, err := albums.FindByNameContains(ctx, "ROAD")
	if err != nil {
		t.Fatalf("FindByNameContains: %v", err)
	}
	if !sameNames(byName, "Abbey Road") {
		t.Fatalf("name filter: got %v", albumNames(byName))
	}

	byArtist, err := albums.FindByArtistNameContains(ctx, "beatles")
	if err != nil {
		t.Fatalf("FindByArtistNameContains: %v", err)
	}
	if !sameNames(byArtist, "Abbey Road", "Let It Be") {
		t.Fatalf("artist filter: got %v", albumNames(byArtist))
	}
	for _, al := range byArtist {
		if al.Artist.Name != "The Beatles" {
			t.Fatalf("artist not attached on filtered read: %+v", al.Artist)
		}
	}

	both, err := albums.FindByNameAndArtistContains(ctx, "e", "jackson")
	if err != nil {
		t.Fatalf("FindByNameAndArtistContains: %v", err)
	}
	if !sameNames(both, "Thriller") {
		t.Fatalf("combined filter: got %v", albumNames(both))
	}

	none, err := albums.FindByNameAndArtistContains(ctx, "abbey", "jackson")
	if err != nil {
		t.Fatalf("FindByNameAndArtistContains: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("combined filter must AND, got %v", albumNames(none))
	}

	byOwner, err := albums.FindByArtistID(ctx, mj.ID)
	if err != nil {
		t.Fatalf("FindByArtistID: %v", err)
	}
	if !sameNames(byOwner, "Thriller", "Bad") {
		t.Fatalf("owner filter: got %v", albumNames(byOwner))
	}
}

func testFiltersFoldAccents(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	sigur := mustArtist(t, artists, "Sigur Rós")
	mustAlbum(t, albums, sigur, "Ágætis Byrjun", "Rock", 12)

	found, err := artists.FindAll(ctx, "RÓS")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(found) != 1 || found[0].ID != sigur.ID {
		t.Fatalf("artist filter RÓS: got %+v", found)
	}

	byName, err := albums.FindByNameContains(ctx, "ÁGÆTIS")
	if err != nil {
		t.Fatalf("FindByNameContains: %v", err)
	}
	if !sameNames(byName, "Ágætis Byrjun") {
		t.Fatalf("album filter ÁGÆTIS: got %v", albumNames(byName))
	}

	byArtist, err := albums.FindByArtistNameContains(ctx, "sigur rós")
	if err != nil {
		t.Fatalf("FindByArtistNameContains: %v", err)
	}
	if !sameNames(byArtist, "Ágætis Byrjun") {
		t.Fatalf("artist filter sigur rós: got %v", albumNames(byArtist))
	}
}

func testAlbumUpdate(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "The Beatles")
	other := mustArtist(t, artists, "Michael Jackson")
	al := mustAlbum(t, albums, a, "Abbey Road", "Rock", 19.99)

	later := epoch.Add(time.Hour)
	merged := catalog.MergeAlbum(*al, catalog.AlbumPatch{Price: floatPtr(500)}, later)
	// a store must not honour owner or identity changes smuggled in on the value
	merged.ArtistID = other.ID
	merged.UUID = uuid.New()

	if err := albums.Save(ctx, &merged); err != nil {
		t.Fatalf("update album: %v", err)
	}

	got, err := albums.FindByID(ctx, al.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v, %v", got, err)
	}
	if got.Price != 500 {
		t.Fatalf("price not updated: %v", got.Price)
	}
	if got.Name != "Abbey Road" || got.Genre != "Rock" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.ArtistID != a.ID || got.Artist.Name != "The Beatles" {
		t.Fatalf("owner changed: %d %q", got.ArtistID, got.Artist.Name)
	}
	if got.UUID != al.UUID {
		t.Fatalf("uuid changed: %s -> %s", al.UUID, got.UUID)
	}
	if !got.CreatedAt.Equal(al.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", al.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt not advanced: %v", got.UpdatedAt)
	}

	ghost := *got
	ghost.ID = al.ID + 100
	if err := albums.Save(ctx, &ghost); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound updating unknown album, got %v", err)
	}
}

func testAlbumDelete(t *testing.T, artists store.ArtistStore, albums store.AlbumStore) {
	ctx := context.Background()
	a := mustArtist(t, artists, "Queen")
	al := mustAlbum(t, albums, a, "Jazz", "Rock", 7.5)

	if err := albums.DeleteByID(ctx, al.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := albums.FindByID(ctx, al.ID); err != nil || got != nil {
		t.Fatalf("deleted album visible by id: %v, %v", got, err)
	}
	if got, err := albums.FindByUUID(ctx, al.UUID); err != nil || got != nil {
		t.Fatalf("deleted album visible by uuid: %v, %v", got, err)
	}
	list, err := albums.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted album listed: %v", albumNames(list))
	}

	// unconditional: deleting again or deleting nothing is not an error
	if err := albums.DeleteByID(ctx, al.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := albums.DeleteByID(ctx, al.ID+100); err != nil {
		t.Fatalf("delete of unknown id: %v", err)
	}

	merged := catalog.MergeAlbum(*al, catalog.AlbumPatch{Name: strPtr("Jazz (Remaster)")}, epoch.Add(time.Hour))
	if err := albums.Save(ctx, &merged); !catalog.IsNotFound(err) {
		t.Fatalf("expected NotFound updating deleted album, got %v", err)
	}
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

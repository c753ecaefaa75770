package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/store"
	"music-catalog/internal/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (store.ArtistStore, store.AlbumStore) {
		s := New(logger.Nop())
		return s.Artists(), s.Albums()
	})
}

func TestConcurrentCreateSameNameOneWins(t *testing.T) {
	s := New(logger.Nop())
	artists := s.Artists()

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "queen"
			if i%2 == 0 {
				name = "QUEEN"
			}
			a := catalog.NewArtist(catalog.ArtistInput{Name: name}, time.Now())
			err := artists.Save(context.Background(), &a)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case catalog.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if ok != 1 || conflicts != n-1 {
		t.Fatalf("expected exactly one winner, got %d ok / %d conflicts", ok, conflicts)
	}
}

func TestConcurrentAlbumInsertAndArtistDelete(t *testing.T) {
	for round := 0; round < 20; round++ {
		s := New(logger.Nop())
		artists, albums := s.Artists(), s.Albums()

		a := catalog.NewArtist(catalog.ArtistInput{Name: fmt.Sprintf("Band %d", round)}, time.Now())
		if err := artists.Save(context.Background(), &a); err != nil {
			t.Fatalf("save artist: %v", err)
		}

		var (
			wg       sync.WaitGroup
			albumErr error
			delErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			price := 1.0
			al := catalog.NewAlbum(catalog.AlbumInput{Name: "Debut", Price: &price}, a, time.Now())
			albumErr = albums.Save(context.Background(), &al)
		}()
		go func() {
			defer wg.Done()
			delErr = artists.DeleteByID(context.Background(), a.ID)
		}()
		wg.Wait()

		// either the album landed first and the delete was refused, or the
		// artist went first and the album was rejected; never both succeed
		if albumErr == nil && delErr == nil {
			t.Fatalf("round %d: album created for an artist that was deleted", round)
		}
		if albumErr != nil && !catalog.IsNotFound(albumErr) {
			t.Fatalf("round %d: album error %v", round, albumErr)
		}
		if delErr != nil && !catalog.IsConflict(delErr) {
			t.Fatalf("round %d: delete error %v", round, delErr)
		}
	}
}

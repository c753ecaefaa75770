package gormstore

import (
	"context"
	"fmt"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlbumStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlbumStore(db *gorm.DB, baseLog *logger.Logger) *AlbumStore {
	return &AlbumStore{db: db, log: baseLog.With("repo", "AlbumStore")}
}

func liveAlbums(db *gorm.DB) *gorm.DB {
	return db.Model(&catalog.Album{}).
		Preload("Artist").
		Where("albums.is_deleted = ?", false)
}

func withArtistJoin(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN artists ON artists.id = albums.artist_id")
}

func (r *AlbumStore) list(q *gorm.DB, what string) ([]catalog.Album, error) {
	var out []catalog.Album
	if err := q.Order("albums.id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list albums %s: %w", what, err)
	}
	return out, nil
}

func (r *AlbumStore) FindAll(ctx context.Context) ([]catalog.Album, error) {
	return r.list(liveAlbums(r.db.WithContext(ctx)), "all")
}

func (r *AlbumStore) FindByNameContains(ctx context.Context, name string) ([]catalog.Album, error) {
	q := liveAlbums(r.db.WithContext(ctx)).
		Where(`albums.name_key LIKE ? ESCAPE '\'`, containsPattern(name))
	return r.list(q, "by name")
}

func (r *AlbumStore) FindByArtistNameContains(ctx context.Context, artist string) ([]catalog.Album, error) {
	q := withArtistJoin(liveAlbums(r.db.WithContext(ctx))).
		Where(`artists.name_key LIKE ? ESCAPE '\'`, containsPattern(artist))
	return r.list(q, "by artist")
}

func (r *AlbumStore) FindByNameAndArtistContains(ctx context.Context, name, artist string) ([]catalog.Album, error) {
	q := withArtistJoin(liveAlbums(r.db.WithContext(ctx))).
		Where(`albums.name_key LIKE ? ESCAPE '\'`, containsPattern(name)).
		Where(`artists.name_key LIKE ? ESCAPE '\'`, containsPattern(artist))
	return r.list(q, "by name and artist")
}

func (r *AlbumStore) FindByArtistID(ctx context.Context, artistID uint) ([]catalog.Album, error) {
	q := liveAlbums(r.db.WithContext(ctx)).Where("albums.artist_id = ?", artistID)
	return r.list(q, "by artist id")
}

func (r *AlbumStore) FindByID(ctx context.Context, id uint) (*catalog.Album, error) {
	return r.first(ctx, "albums.id = ?", id)
}

func (r *AlbumStore) FindByUUID(ctx context.Context, id uuid.UUID) (*catalog.Album, error) {
	return r.first(ctx, "albums.uuid = ?", id)
}

func (r *AlbumStore) first(ctx context.Context, cond string, arg interface{}) (*catalog.Album, error) {
	var a catalog.Album
	err := liveAlbums(r.db.WithContext(ctx)).Where(cond, arg).First(&a).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find album: %w", err)
	}
	return &a, nil
}

func (r *AlbumStore) Save(ctx context.Context, a *catalog.Album) error {
	if a == nil {
		return nil
	}
	a.NameKey = catalog.FoldName(a.Name)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ID == 0 {
			// hold the artist row so a concurrent delete waits for this insert
			var artist catalog.Artist
			if err := liveArtists(tx).Clauses(lockForShare).Where("artists.id = ?", a.ArtistID).First(&artist).Error; err != nil {
				if isNotFound(err) {
					return catalog.NotFound("artist with id %d not found", a.ArtistID)
				}
				return err
			}
			if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
				return err
			}
			a.Artist = artist
			return nil
		}

		res := tx.Model(&catalog.Album{}).
			Where("id = ? AND is_deleted = ?", a.ID, false).
			Select("name", "name_key", "genre", "price", "updated_at").
			Updates(map[string]interface{}{
				"name":       a.Name,
				"name_key":   a.NameKey,
				"genre":      a.Genre,
				"price":      a.Price,
				"updated_at": a.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.NotFound("album with id %d not found", a.ID)
		}
		return liveAlbums(tx).Where("albums.id = ?", a.ID).First(a).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return catalog.Conflict("album uuid %s already exists", a.UUID)
		}
		if catalog.KindOf(err) != catalog.KindInternal {
			return err
		}
		return fmt.Errorf("save album: %w", err)
	}
	r.log.Debug("album saved", "album_id", a.ID)
	return nil
}

func (r *AlbumStore) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&catalog.Album{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
	if err != nil {
		return fmt.Errorf("delete album %d: %w", id, err)
	}
	r.log.Debug("album deleted", "album_id", id)
	return nil
}

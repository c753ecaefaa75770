package gormstore

import (
	"context"
	"fmt"
	"strings"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"gorm.io/gorm"
)

type ArtistStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArtistStore(db *gorm.DB, baseLog *logger.Logger) *ArtistStore {
	return &ArtistStore{db: db, log: baseLog.With("repo", "ArtistStore")}
}

func liveArtists(db *gorm.DB) *gorm.DB {
	return db.Model(&catalog.Artist{}).Where("artists.is_deleted = ?", false)
}

func (r *ArtistStore) FindAll(ctx context.Context, name string) ([]catalog.Artist, error) {
	q := liveArtists(r.db.WithContext(ctx))
	if strings.TrimSpace(name) != "" {
		q = q.Where(`artists.name_key LIKE ? ESCAPE '\'`, containsPattern(name))
	}
	var out []catalog.Artist
	if err := q.Order("artists.id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return out, nil
}

func (r *ArtistStore) FindByName(ctx context.Context, name string) (*catalog.Artist, error) {
	var a catalog.Artist
	err := liveArtists(r.db.WithContext(ctx)).
		Where("artists.name_key = ?", catalog.FoldName(name)).
		First(&a).Error
	if err != nil {
		if isNotFound(err) {
			return nil, catalog.NotFound("artist %q not found", name)
		}
		return nil, fmt.Errorf("find artist by name: %w", err)
	}
	return &a, nil
}

func (r *ArtistStore) FindByID(ctx context.Context, id uint) (*catalog.Artist, error) {
	var a catalog.Artist
	err := liveArtists(r.db.WithContext(ctx)).Where("artists.id = ?", id).First(&a).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find artist %d: %w", id, err)
	}
	return &a, nil
}

func (r *ArtistStore) Save(ctx context.Context, a *catalog.Artist) error {
	if a == nil {
		return nil
	}
	a.NameKey = catalog.FoldName(a.Name)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ID != 0 {
			var current catalog.Artist
			if err := liveArtists(tx).Clauses(lockForUpdate).Where("artists.id = ?", a.ID).First(&current).Error; err != nil {
				if isNotFound(err) {
					return catalog.NotFound("artist with id %d not found", a.ID)
				}
				return err
			}
			if a.IsDeleted {
				busy, err := hasLiveAlbums(tx, a.ID)
				if err != nil {
					return err
				}
				if busy {
					return catalog.Conflict("artist with id %d still has albums", a.ID)
				}
			}
		}

		if !a.IsDeleted {
			var taken int64
			if err := liveArtists(tx).
				Where("artists.name_key = ? AND artists.id <> ?", a.NameKey, a.ID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return catalog.Conflict("an artist named %q already exists", a.Name)
			}
		}

		if a.ID == 0 {
			return tx.Create(a).Error
		}
		return tx.Model(&catalog.Artist{}).
			Where("id = ?", a.ID).
			Select("name", "name_key", "is_deleted", "updated_at").
			Updates(map[string]interface{}{
				"name":       a.Name,
				"name_key":   a.NameKey,
				"is_deleted": a.IsDeleted,
				"updated_at": a.UpdatedAt,
			}).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return catalog.Conflict("an artist named %q already exists", a.Name)
		}
		if catalog.KindOf(err) != catalog.KindInternal {
			return err
		}
		return fmt.Errorf("save artist: %w", err)
	}
	r.log.Debug("artist saved", "artist_id", a.ID)
	return nil
}

func (r *ArtistStore) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a catalog.Artist
		if err := liveArtists(tx).Clauses(lockForUpdate).Where("artists.id = ?", id).First(&a).Error; err != nil {
			if isNotFound(err) {
				return catalog.NotFound("artist with id %d not found", id)
			}
			return err
		}
		busy, err := hasLiveAlbums(tx, id)
		if err != nil {
			return err
		}
		if busy {
			return catalog.Conflict("artist with id %d still has albums", id)
		}
		return tx.Model(&catalog.Artist{}).Where("id = ?", id).Update("is_deleted", true).Error
	})
	if err != nil {
		if catalog.KindOf(err) != catalog.KindInternal {
			r.log.Warn("artist delete refused", "artist_id", id, "error", err.Error())
			return err
		}
		return fmt.Errorf("delete artist %d: %w", id, err)
	}
	r.log.Debug("artist deleted", "artist_id", id)
	return nil
}

func hasLiveAlbums(tx *gorm.DB, artistID uint) (bool, error) {
	var n int64
	err := tx.Model(&catalog.Album{}).
		Where("artist_id = ? AND is_deleted = ?", artistID, false).
		Count(&n).Error
	return n > 0, err
}

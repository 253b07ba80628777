package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, offset, limit int, authorID uint) ([]models.Post, int64, error)
	CountPostsByUser(userID uint) (int64, error)
	DeletePost(ctx context.Context, id uint) error
	DeleteOrphanPosts(ctx context.Context, olderThan time.Time) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post and reloads it with its author
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(post, post.ID).Error
}

// GetPostByID retrieves a post with its author
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns a page of posts, newest first, with the matching total.
// authorID of zero means no author filter.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, offset, limit int, authorID uint) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if authorID != 0 {
		q = q.Where("user_id = ?", authorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CountPostsByUser counts posts authored by the user
func (r *PostgresPostRepository) CountPostsByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeletePost deletes a post and its dependent rows
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// DeleteOrphanPosts removes posts left without any media reference past the
// grace period. These are leftovers of the two-phase creation flow where the
// media patch never arrived.
func (r *PostgresPostRepository) DeleteOrphanPosts(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("(image_url IS NULL OR image_url = '') AND (video_url IS NULL OR video_url = '')").
		Where("created_at < ?", olderThan).
		Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

// IsMissingTable reports whether the error is a "table does not exist"
// failure, the pre-migration state that list reads degrade gracefully on.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "no such table")
}

package repositories

import (
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	CreateBookmark(bookmark *models.Bookmark) error
	DeleteBookmark(userID, postID uint) error
	IsPostBookmarked(userID, postID uint) (bool, error)
	GetBookmarksByUser(userID uint) ([]models.Bookmark, error)
	GetBookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// CreateBookmark inserts the bookmark row. A duplicate surfaces as
// gorm.ErrDuplicatedKey; the handler treats that as success.
func (r *PostgresBookmarkRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

// DeleteBookmark removes the bookmark; removing an absent one is not an error
func (r *PostgresBookmarkRepository) DeleteBookmark(userID, postID uint) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{}).Error
}

// IsPostBookmarked checks whether a bookmark row exists for (user, post)
func (r *PostgresBookmarkRepository) IsPostBookmarked(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBookmarksByUser lists the user's bookmarks with their posts, newest first
func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).
		Preload("Post").
		Preload("Post.User").
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// GetBookmarkedPostIDs returns which of postIDs the user has bookmarked
func (r *PostgresBookmarkRepository) GetBookmarkedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var bookmarks []models.Bookmark
	if err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		result[b.PostID] = true
	}
	return result, nil
}

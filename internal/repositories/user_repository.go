package repositories

import (
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertByAuthUID(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByAuthUID(authUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertByAuthUID inserts the user or, if a row with the same external
// identity id exists, refreshes its display fields. Idempotent, so callers
// never need a "already synced" guard.
func (r *PostgresUserRepository) UpsertByAuthUID(user *models.User) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "username", "avatar_url", "updated_at"}),
	}).Create(user).Error
}

// GetUserByID retrieves a user by internal ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByAuthUID retrieves a user by external identity id
func (r *PostgresUserRepository) GetUserByAuthUID(authUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("auth_uid = ?", authUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SearchUsers searches for users by name or username (case-insensitive substring)
func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?)", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

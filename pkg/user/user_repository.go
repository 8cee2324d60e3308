package user

import (
	"Recipebook-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		RegisterUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		CheckEmailExists(ctx context.Context, email string) (bool, error)
		CheckUsernameExists(ctx context.Context, username string) (bool, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error)

		// Subscriptions
		CreateSubscription(ctx context.Context, subscription *entities.Subscription) error
		DeleteSubscription(ctx context.Context, subscriberID, authorID string) error
		IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error)
		GetSubscribedAuthorIDs(ctx context.Context, subscriberID string, authorIDs []string) ([]string, error)
		GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) RegisterUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("username asc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *userRepository) DeleteSubscription(ctx context.Context, subscriberID, authorID string) error {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&entities.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSubscribedAuthorIDs answers the subscription flag for a whole set
// of authors with a single query.
func (r *userRepository) GetSubscribedAuthorIDs(ctx context.Context, subscriberID string, authorIDs []string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("subscriber_id = ? AND author_id IN ?", subscriberID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN subscriptions ON users.id = subscriptions.author_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON users.id = subscriptions.author_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Offset(offset).
		Limit(limit).
		Order("subscriptions.added_at desc").
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}

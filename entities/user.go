package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `gorm:"size:150" json:"-"`
	Role      string    `gorm:"size:16;default:user" json:"role"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID"`
	Timestamp
}

type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair" json:"author_id"`
	AddedAt      time.Time `gorm:"type:timestamp" json:"added_at"`

	Subscriber *User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Author     *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex;not null;column:email" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"size:150;not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"size:150;not null;column:last_name" json:"last_name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// Subscription means UserID follows AuthorID.
type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair,priority:1;column:user_id" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair,priority:2;index;column:author_id" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Subscription) TableName() string { return "subscription" }

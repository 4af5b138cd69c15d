// Package model holds the GORM persistence models mirroring the database
// tables. They are mapped to and from the pure domain entities by the
// repositories.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. Uniqueness of phone number and email
// is enforced here, at the storage layer; pre-checks in the usecase layer
// only exist for friendlier field-scoped error messages.
type UserModel struct {
	ID               int64      `gorm:"primaryKey"`
	PhoneNumber      string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	FirstName        string     `gorm:"type:varchar(100);not null"`
	LastName         string     `gorm:"type:varchar(100);not null"`
	DateOfBirth      time.Time  `gorm:"not null"`
	Gender           string     `gorm:"type:varchar(10);not null"`
	City             string     `gorm:"type:varchar(100);not null"`
	District         string     `gorm:"type:varchar(100);not null"`
	Location         string     `gorm:"type:varchar(255)"`
	Email            *string    `gorm:"type:varchar(255);uniqueIndex"`
	ProfileImage     string     `gorm:"type:varchar(255)"`
	Role             string     `gorm:"type:varchar(10);not null"`
	IsPhoneVerified  bool       `gorm:"not null;default:false"`
	StoreName        string     `gorm:"type:varchar(100)"`
	StoreDescription string     `gorm:"type:text"`
	WebsiteURL1      string     `gorm:"type:varchar(255)"`
	WebsiteURL2      string     `gorm:"type:varchar(255)"`
	WebsiteURL3      string     `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	StoreCategories []StoreCategoryModel `gorm:"foreignKey:UserID"`
	Requests        []RequestModel       `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

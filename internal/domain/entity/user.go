// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// UserRole distinguishes buyers from sellers. Sellers own a store profile
// and specialty edges; buyers only post sourcing requests.
type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User is the core identity in the system. Exactly one User exists per
// distinct phone number; the account is created only after the owning
// verification session reports the phone as verified.
type User struct {
	ID              int64     `json:"id"`
	PhoneNumber     string    `json:"phoneNumber"` // normalized E.164 form, unique
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	Gender          string    `json:"gender"`
	City            string    `json:"city"`
	District        string    `json:"district"`
	Location        string    `json:"location"`
	Email           string    `json:"email"`        // optional, unique when present
	ProfileImage    string    `json:"profileImage"` // stored relative path, optional
	Role            UserRole  `json:"role"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`

	// Seller-only store fields.
	StoreName        string `json:"storeName,omitempty"`
	StoreDescription string `json:"storeDescription,omitempty"`
	WebsiteURL1      string `json:"websiteUrl1,omitempty"`
	WebsiteURL2      string `json:"websiteUrl2,omitempty"`
	WebsiteURL3      string `json:"websiteUrl3,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName is the name used in outbound messages.
func (u *User) DisplayName() string {
	if u.Role == RoleSeller && u.StoreName != "" {
		return u.StoreName
	}

	return u.FirstName + " " + u.LastName
}

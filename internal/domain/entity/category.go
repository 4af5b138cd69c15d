package entity

import "time"

// Category is the root level of the three-level product taxonomy.
// IsActive hides a node from new selections without deleting history.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`

	SubCategories1 []*SubCategory1 `json:"subCategories1,omitempty"`
}

// SubCategory1 is the middle taxonomy level; its parent is always a Category.
type SubCategory1 struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"categoryId"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`

	SubCategories2 []*SubCategory2 `json:"subCategories2,omitempty"`
}

// SubCategory2 is the leaf taxonomy level; its parent is always a SubCategory1.
type SubCategory2 struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	SubCategory1ID int64     `json:"subCategory1Id"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StoreCategory is a specialty edge: the seller identified by UserID serves
// the taxonomy node it points at. Exactly one of CategoryID, SubCategory1ID
// and SubCategory2ID is set, and the edge exists at most once per
// (user, node) pair.
type StoreCategory struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	CategoryID     *int64    `json:"categoryId,omitempty"`
	SubCategory1ID *int64    `json:"subCategory1Id,omitempty"`
	SubCategory2ID *int64    `json:"subCategory2Id,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

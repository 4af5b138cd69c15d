package model

import "time"

// CategoryModel mirrors the 'categories' table, the root taxonomy level.
type CategoryModel struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time

	SubCategories1 []SubCategory1Model `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// SubCategory1Model mirrors the 'sub_categories1' table. CategoryID points
// one level up; the foreign key makes a dangling parent impossible.
type SubCategory1Model struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"type:varchar(100);not null"`
	CategoryID int64  `gorm:"not null;index"`
	IsActive   bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time

	SubCategories2 []SubCategory2Model `gorm:"foreignKey:SubCategory1ID"`
}

// TableName explicitly sets the table name for GORM.
func (SubCategory1Model) TableName() string {
	return "sub_categories1"
}

// SubCategory2Model mirrors the 'sub_categories2' table.
type SubCategory2Model struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(100);not null"`
	SubCategory1ID int64  `gorm:"not null;index"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubCategory2Model) TableName() string {
	return "sub_categories2"
}

// StoreCategoryModel mirrors the 'store_categories' table: one specialty edge
// per row, at most once per (user, node) pair thanks to the composite unique
// indexes.
type StoreCategoryModel struct {
	ID             int64  `gorm:"primaryKey"`
	UserID         int64  `gorm:"not null;index;uniqueIndex:uniq_store_cat,priority:1;uniqueIndex:uniq_store_sub1,priority:1;uniqueIndex:uniq_store_sub2,priority:1"`
	CategoryID     *int64 `gorm:"index;uniqueIndex:uniq_store_cat,priority:2"`
	SubCategory1ID *int64 `gorm:"index;uniqueIndex:uniq_store_sub1,priority:2"`
	SubCategory2ID *int64 `gorm:"index;uniqueIndex:uniq_store_sub2,priority:2"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreCategoryModel) TableName() string {
	return "store_categories"
}

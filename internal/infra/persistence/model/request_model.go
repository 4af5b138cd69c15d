package model

import "time"

// RequestModel mirrors the 'requests' table.
type RequestModel struct {
	ID             int64  `gorm:"primaryKey"`
	Title          string `gorm:"type:varchar(200);not null"`
	Description    string `gorm:"type:text;not null"`
	CategoryID     int64  `gorm:"not null;index"`
	SubCategory1ID *int64 `gorm:"index"`
	SubCategory2ID *int64 `gorm:"index"`
	City           string `gorm:"type:varchar(100);not null"`
	District       string `gorm:"type:varchar(100);not null"`
	Location       string `gorm:"type:varchar(255)"`
	UserID         int64  `gorm:"not null;index"`
	Status         string `gorm:"type:varchar(10);not null;index;default:pending"`
	AdminNotes     string `gorm:"type:text"`
	CreatedAt      time.Time
	ApprovedAt     *time.Time

	Images []RequestImageModel `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	User   *UserModel          `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (RequestModel) TableName() string {
	return "requests"
}

// RequestImageModel mirrors the 'request_images' table. Rows are owned
// exclusively by one request and go away with it.
type RequestImageModel struct {
	ID        int64  `gorm:"primaryKey"`
	RequestID int64  `gorm:"not null;index"`
	ImagePath string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RequestImageModel) TableName() string {
	return "request_images"
}

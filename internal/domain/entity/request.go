package entity

import "time"

// RequestStatus is the lifecycle state of a sourcing request.
// Pending transitions to exactly one of Approved or Rejected; both are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further status transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is a buyer's sourcing need, classified against the taxonomy.
// Partial specificity is allowed: CategoryID is always set, the subcategory
// references are optional but must be consistent with the category chain.
type Request struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	CategoryID     int64         `json:"categoryId"`
	SubCategory1ID *int64        `json:"subCategory1Id,omitempty"`
	SubCategory2ID *int64        `json:"subCategory2Id,omitempty"`
	City           string        `json:"city"`
	District       string        `json:"district"`
	Location       string        `json:"location"`
	UserID         int64         `json:"userId"`
	Status         RequestStatus `json:"status"`
	AdminNotes     string        `json:"adminNotes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	ApprovedAt     *time.Time    `json:"approvedAt,omitempty"`

	Images []*RequestImage `json:"images,omitempty"`
	User   *User           `json:"user,omitempty"`
}

// RequestImage is owned exclusively by one Request and is deleted with it.
type RequestImage struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"requestId"`
	ImagePath string    `json:"imagePath"`
	CreatedAt time.Time `json:"createdAt"`
}

package entity

// VerificationFlow tags which path a visitor is on: logging into an existing
// account or verifying a phone ahead of first-time registration.
type VerificationFlow string

const (
	FlowExistingUserLogin   VerificationFlow = "existing_user_login"
	FlowNewUserRegistration VerificationFlow = "new_user_registration"
)

// VerificationSession is the ephemeral per-visitor state of the phone
// verification flow. It lives in the session store under the visitor's opaque
// session id, never outlives the store's idle timeout, and is cleared on
// success, logout or expiry.
type VerificationSession struct {
	PhoneNumber   string           `json:"phoneNumber"`
	Code          string           `json:"code"`
	Flow          VerificationFlow `json:"flow"`
	PhoneVerified bool             `json:"phoneVerified"`
	Attempts      int              `json:"attempts"`
}

// AuthSession is the authenticated-visitor state written once verification
// completes, keyed by the same session id.
type AuthSession struct {
	UserID      int64    `json:"userId"`
	DisplayName string   `json:"displayName"`
	Role        UserRole `json:"role"`
	IsAdmin     bool     `json:"isAdmin"`
}

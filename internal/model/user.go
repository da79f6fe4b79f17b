package model

import "time"

// TimeFormat is the layout used for createdAt/updatedAt timestamps in
// stored user documents. Nanosecond precision keeps updatedAt strictly
// increasing across consecutive updates.
const TimeFormat = time.RFC3339Nano

// FormatTime renders a timestamp in the stored document layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// User represents a stored user profile document.
type User struct {
	UID         string         `json:"uid"`
	Email       string         `json:"email"`
	DisplayName string         `json:"displayName"`
	PhotoURL    string         `json:"photoURL"`
	IsActive    bool           `json:"isActive"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Validate checks the user document invariant: non-empty uid and email.
// Field type conformance is enforced when the document is decoded.
func (u User) Validate() error {
	if u.UID == "" {
		return NewValidationError("missing uid")
	}
	if u.Email == "" {
		return NewValidationError("missing email")
	}
	return nil
}

// CreateUserParams carries the fields accepted when creating a user.
// Unset optional fields receive defaults at creation time.
type CreateUserParams struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	IsActive    *bool
	Metadata    map[string]any
}

// UpdateUserParams carries a partial update. Nil fields are left
// untouched by the merge.
type UpdateUserParams struct {
	Email       *string
	DisplayName *string
	PhotoURL    *string
	IsActive    *bool
	Metadata    map[string]any
}

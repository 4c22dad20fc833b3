package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleBaker    UserRole = "baker"
	RoleSponsor  UserRole = "sponsor"
	RoleAdmin    UserRole = "admin"
)

type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusVerified ProfileStatus = "verified"
	StatusRejected ProfileStatus = "rejected"
	StatusBlocked  ProfileStatus = "blocked"
)

type User struct {
	ID              int64         `json:"id"`
	Email           string        `json:"email" validate:"required,email"`
	PasswordHash    string        `json:"-"`
	Role            UserRole      `json:"role"`
	Name            string        `json:"name"`
	Phone           string        `json:"phone,omitempty"`
	CompanyName     string        `json:"company_name,omitempty"`
	ProfileStatus   ProfileStatus `json:"profile_status,omitempty"`
	IsBanned        bool          `json:"is_banned"`
	BanReason       string        `json:"ban_reason,omitempty" gorm:"type:text"`
	RejectionReason string        `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NeedsVerification reports whether the role goes through the admin
// approval queue before it may operate on the marketplace.
func (u *User) NeedsVerification() bool {
	return u.Role == RoleBaker || u.Role == RoleSponsor
}

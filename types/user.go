package types

import (
	"strings"
	"time"
)

// AccountType decides which dashboard area a user belongs to.
type AccountType string

const (
	AccountTypeUser     AccountType = "user"
	AccountTypeStore    AccountType = "store"
	AccountTypeEngineer AccountType = "engineer"
	AccountTypeAdmin    AccountType = "admin"
)

// AccountTypes lists every known account type.
var AccountTypes = []AccountType{AccountTypeUser, AccountTypeStore, AccountTypeEngineer, AccountTypeAdmin}

// IsValid reports whether a is one of the known account types.
func (a AccountType) IsValid() bool {
	switch a {
	case AccountTypeUser, AccountTypeStore, AccountTypeEngineer, AccountTypeAdmin:
		return true
	}
	return false
}

// ParseAccountType normalises a stored value. Unknown and empty values
// resolve to AccountTypeUser.
func ParseAccountType(raw string) AccountType {
	a := AccountType(strings.ToLower(strings.TrimSpace(raw)))
	if !a.IsValid() {
		return AccountTypeUser
	}
	return a
}

// AreaPrefix is the URL prefix of the account type's pages.
func (a AccountType) AreaPrefix() string {
	return "/" + string(ParseAccountType(string(a)))
}

// DashboardPath is where an authenticated user of this type lands.
func (a AccountType) DashboardPath() string {
	return a.AreaPrefix() + "/dashboard"
}

// User mirrors a row of the public users table.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	AccountType AccountType `json:"account_type"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// UserUpdate carries the editable profile fields. Nil fields are left alone.
type UserUpdate struct {
	FullName  *string `json:"full_name,omitempty" binding:"omitempty,min=2,max=120"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Phone == nil && u.AvatarURL == nil
}

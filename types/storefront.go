package types

import "time"

// Storefront is a seller's store (the stores table). Owned by one
// account of type store.
type Storefront struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StorefrontCreate struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"max=4000"`
	City        string `json:"city" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=32"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url"`
}

type StorefrontUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=4000"`
	City        *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	LogoURL     *string `json:"logo_url,omitempty" binding:"omitempty,url"`
}

type StorefrontFilter struct {
	City  string `form:"city"`
	Query string `form:"q"`
	Page
}

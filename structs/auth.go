package structs

import (
	"time"

	"github.com/google/uuid"
)

type AuthClaims struct {
	Sub      int64     `json:"sub"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

type AdminProfile struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Name        string       `json:"name"`
	Email       *string      `json:"email,omitempty"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	Status      AdminStatus  `json:"status"`
}

type CredentialsRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Username        string `json:"username" validate:"omitempty,min=3,max=100,alphanum"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=6,max=200"`
}

type AdminRequest struct {
	Username    string       `json:"username" validate:"required,min=3,max=100,alphanum"`
	Password    string       `json:"password" validate:"omitempty,min=6,max=200"`
	Name        string       `json:"name" validate:"required,max=100"`
	Email       *string      `json:"email" validate:"omitempty,email"`
	Role        Role         `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN"`
	Permissions []Permission `json:"permissions" validate:"dive,oneof=orders products categories payments discounts flashsales testimonials articles settings admin_users *"`
	IsActive    *bool        `json:"isActive"`
}

package dto

import "time"

// UserDTO 用户
type UserDTO struct {
	UserID         *uint64    `json:"user_id,omitempty"`
	Nickname       *string    `json:"nickname,omitempty"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	Bio            *string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	Role           *string    `json:"role,omitempty"`
	MembershipTier *string    `json:"membership_tier,omitempty"`
	Region         *string    `json:"region,omitempty"`
	Birthday       *string    `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Occupation     *string    `json:"occupation,omitempty"`
	Height         *int       `json:"height,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// RegisterDTO 注册
type RegisterDTO struct {
	Username *string `json:"username"`
	Password *string `json:"password"`

	Role     string  `json:"role" validate:"required,oneof=male female"`
	Nickname string  `json:"nickname" validate:"required,min=1,max=15"`
	Bio      *string `json:"bio"`
	Region   *string `json:"region"`
	Birthday string  `json:"birthday" validate:"required"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

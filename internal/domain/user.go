package domain

import (
	"time"
)

type Role string

const (
	RoleAssistant Role = "普通助理"
	RoleBlackCore Role = "黑心"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// IsAdmin 只有黑心可以管理容量和删除他人的预约
func (u *User) IsAdmin() bool {
	return u.Role == RoleBlackCore
}

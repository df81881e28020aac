package models

import "time"

// Role controls access to the admin surfaces.
type Role string

const (
	RoleAuthor     Role = "AUTHOR"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// UserModel represents an author or administrator of the site.
type UserModel struct {
	Base
	Username      string     `json:"username"        gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Bio           string     `json:"bio"             gorm:"type:text"`
	Avatar        string     `json:"avatar"`
	Password      string     `json:"-"               gorm:"not null"`
	Mail          string     `json:"mail"`
	Role          Role       `json:"role"            gorm:"default:'AUTHOR';index"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }

// DisplayName is what notification messages call this user.
func (u UserModel) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Mail
}

package auth

import "time"

// Roles mirror the operational hierarchy: administrators manage zones
// and boats, technicians run drills and maintenance, fishermen own boats.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleFisherman  = "fisherman"
)

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string  `gorm:"primaryKey" json:"user_id"`
	Username       string  `gorm:"uniqueIndex" json:"username"`
	Password       string  `json:"password" gorm:"-"`
	HashedPassword string  `json:"-"`
	Role           string  `gorm:"default:'fisherman'" json:"role"`
	FullName       string  `json:"full_name"`
	Session        Session `gorm:"foreignKey:UserID" json:"session"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (User) TableName() string    { return "app_auth.users" }

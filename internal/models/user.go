package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Role represents a user's role in the system
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw role string onto the closed role set
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDoctor:
		return RoleDoctor, nil
	case RolePatient:
		return RolePatient, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", &ValidationError{Field: "role", Reason: "unknown role"}
	}
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient || r == RoleAdmin
}

// User represents an authenticated principal (doctor, patient or admin)
type User struct {
	ID             string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string `gorm:"type:varchar(255);not null" json:"name"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role           Role   `gorm:"type:varchar(20);not null" json:"role"`
	ProfileImage   string `gorm:"type:varchar(500)" json:"profileImage,omitempty"`
	Phone          string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Specialization string `gorm:"type:varchar(255)" json:"specialization,omitempty"` // doctors only
	MedicalHistory string `gorm:"type:text" json:"medicalHistory,omitempty"`         // patients only

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// LoginRequest represents a login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// SessionClaims represents custom JWT claims issued at login
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// UserContext is the identity attached to a request context
type UserContext struct {
	UserID string
	Role   Role
}

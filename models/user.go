package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const UserTable = "users"

// User types, fixed enumeration.
const (
	TypeStudent       = "Student"
	TypeFaculty       = "Faculty"
	TypeAdministrator = "Administrator"
	TypeOther         = "Other"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:30" json:"phone,omitempty"`
	UserType  string `gorm:"size:20;not null;default:'Student'" json:"userType"`

	// Only the bcrypt blob is ever stored; never serialized.
	PasswordHash string `gorm:"size:100;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

func ValidUserType(t string) bool {
	switch t {
	case TypeStudent, TypeFaculty, TypeAdministrator, TypeOther:
		return true
	}
	return false
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return errors.New("firstName is required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		return errors.New("lastName is required")
	}
	if !emailRe.MatchString(u.Email) {
		return fmt.Errorf("invalid email address %q", u.Email)
	}
	if !ValidUserType(u.UserType) {
		return fmt.Errorf("unknown user type %q", u.UserType)
	}
	return nil
}

// models/loan.go
package models

import "time"

const LoanTable = "loans"

// Loan statuses.
const (
	StatusPending  = "Pending"
	StatusReturned = "Returned"
	StatusOverdue  = "Overdue"
)

type Loan struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"userId"`
	BookID uint `gorm:"index;not null" json:"bookId"`

	// LoanDate is minted by the server at creation, never caller-supplied.
	LoanDate time.Time `gorm:"index;not null" json:"loanDate"`
	DueDate  time.Time `gorm:"not null" json:"dueDate"`

	ReturnDate *time.Time `gorm:"index" json:"returnDate,omitempty"`
	Status     string     `gorm:"size:20;not null;default:'Pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Cascade clears returned/overdue history when a book or user goes away;
	// Pending loans are protected by a business rule before it can fire.
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Book *Book `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"book,omitempty"`
}

func (Loan) TableName() string { return LoanTable }

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const BookTable = "books"

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Author    string    `gorm:"size:200;not null" json:"author"`
	Publisher string    `gorm:"size:200" json:"publisher"`
	ISBN      string    `gorm:"size:20;uniqueIndex;not null" json:"isbn"`
	Year      int       `gorm:"not null" json:"year"`
	Category  string    `gorm:"size:100" json:"category"`
	Stock     int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }

// Validate checks the field rules that hold regardless of storage:
// non-empty ISBN/title/author, a plausible publication year, stock >= 0.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return errors.New("author is required")
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return errors.New("isbn is required")
	}
	if y := time.Now().Year(); b.Year <= 1000 || b.Year > y {
		return fmt.Errorf("year must be within (1000, %d]", y)
	}
	if b.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

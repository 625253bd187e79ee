package db

import (
	"context"
	"errors"
	"strings"

	"library-api/models"

	"gorm.io/gorm"
)

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	if err := b.Validate(); err != nil {
		return validationErr(err)
	}
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

func (r *Repo) FindBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("book", id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) ListBooks(ctx context.Context, titleFilter, authorFilter string) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{}).Order("title ASC")
	if titleFilter != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(titleFilter)+"%")
	}
	if authorFilter != "" {
		q = q.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(authorFilter)+"%")
	}
	var books []models.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook replaces the caller-editable fields. The bool result keeps
// "found but unchanged" apart from "found and changed"; not-found comes back
// as an error so the three outcomes stay distinguishable.
func (r *Repo) UpdateBook(ctx context.Context, id uint, in *models.Book) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, validationErr(err)
	}
	changed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("book", id)
			}
			return err
		}
		if b.Title == in.Title && b.Author == in.Author && b.Publisher == in.Publisher &&
			b.ISBN == in.ISBN && b.Year == in.Year && b.Category == in.Category &&
			b.Stock == in.Stock {
			return nil
		}
		updates := map[string]any{
			"title":     in.Title,
			"author":    in.Author,
			"publisher": in.Publisher,
			"isbn":      in.ISBN,
			"year":      in.Year,
			"category":  in.Category,
			"stock":     in.Stock,
		}
		if err := tx.Model(&b).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateISBN
			}
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// DeleteBook refuses while any Pending loan references the book; historical
// loans go with it via the FK cascade.
func (r *Repo) DeleteBook(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("book", id)
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("book_id = ? AND status = ?", id, models.StatusPending).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrPendingLoans
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Loan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Book{}, id).Error
	})
}

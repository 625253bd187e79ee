package db

import (
	"context"
	"errors"
	"time"

	"library-api/models"

	"gorm.io/gorm"
)

// Loans. Every mutation runs in one transaction so the loan row and its
// stock adjustment commit or roll back together; no reader ever sees one
// half without the other.

// CreateLoan checks its preconditions in a fixed order, each with its own
// error, then inserts the loan and decrements stock atomically. The
// decrement is guarded (stock > 0 in the WHERE), so two concurrent creates
// against a one-copy book serialize on the row and the loser rolls back.
func (r *Repo) CreateLoan(ctx context.Context, userID, bookID uint, dueDate time.Time, status string) (*models.Loan, error) {
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var loan *models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanUserNotFound
			}
			return err
		}
		var b models.Book
		if err := tx.First(&b, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanBookNotFound
			}
			return err
		}
		if b.Stock <= 0 {
			return ErrNoStock
		}
		now := time.Now().UTC()
		if !dueDate.After(now) {
			return ErrDueDateNotFuture
		}

		res := tx.Model(&models.Book{}).
			Where("id = ? AND stock > 0", bookID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race to another borrower
			return ErrNoStock
		}

		l := &models.Loan{
			UserID:   userID,
			BookID:   bookID,
			LoanDate: now,
			DueDate:  dueDate,
			Status:   status,
		}
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *Repo) FindLoanByID(ctx context.Context, id uint) (*models.Loan, error) {
	var l models.Loan
	if err := r.DB.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("loan", id)
		}
		return nil, err
	}
	return &l, nil
}

// UpdateLoan moves a loan to a new status. Stock goes up by one exactly
// once, on the transition into Returned from a non-Returned state; asking
// for the status the loan already has (Returned included) is a recognized
// no-op and reports changed=false without touching stock.
func (r *Repo) UpdateLoan(ctx context.Context, id uint, status string, returnDate *time.Time) (bool, error) {
	if !models.ValidStatus(status) {
		return false, ErrInvalidStatus
	}
	if status == models.StatusReturned && returnDate == nil {
		return false, ErrReturnDateRequired
	}

	changed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.Loan
		if err := tx.First(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("loan", id)
			}
			return err
		}
		if l.Status == status {
			return nil
		}
		if returnDate != nil && returnDate.Before(l.LoanDate) {
			return ErrReturnBeforeLoan
		}

		updates := map[string]any{"status": status}
		if returnDate != nil {
			updates["return_date"] = returnDate
		}
		if err := tx.Model(&l).Updates(updates).Error; err != nil {
			return err
		}
		if status == models.StatusReturned {
			if err := tx.Model(&models.Book{}).
				Where("id = ?", l.BookID).
				Update("stock", gorm.Expr("stock + 1")).Error; err != nil {
				return err
			}
		}
		changed = true
		return nil
	})
	return changed, err
}

// DeleteLoan removes the row; a Pending loan holds an implicit reservation,
// so deleting one puts the copy back on the shelf.
func (r *Repo) DeleteLoan(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.Loan
		if err := tx.First(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("loan", id)
			}
			return err
		}
		if err := tx.Delete(&models.Loan{}, id).Error; err != nil {
			return err
		}
		if l.Status == models.StatusPending {
			if err := tx.Model(&models.Book{}).
				Where("id = ?", l.BookID).
				Update("stock", gorm.Expr("stock + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListLoans(ctx context.Context, status string, userID, bookID uint) ([]models.Loan, error) {
	q := r.DB.WithContext(ctx).Model(&models.Loan{}).Order("loan_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if bookID != 0 {
		q = q.Where("book_id = ?", bookID)
	}
	var ls []models.Loan
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

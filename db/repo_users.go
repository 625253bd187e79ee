package db

import (
	"context"
	"errors"

	"library-api/models"

	"gorm.io/gorm"
)

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return validationErr(err)
	}
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *Repo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("user", id)
		}
		return nil, err
	}
	return &u, nil
}

// FindUserByEmail backs the credential-validation flow. The caller is
// responsible for keeping a miss indistinguishable from a bad password.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdateUser replaces the profile fields. newHash, when non-empty, replaces
// the stored credential; an empty newHash leaves the hash untouched.
func (r *Repo) UpdateUser(ctx context.Context, id uint, in *models.User, newHash string) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, validationErr(err)
	}
	changed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("user", id)
			}
			return err
		}
		if u.FirstName == in.FirstName && u.LastName == in.LastName &&
			u.Email == in.Email && u.Phone == in.Phone &&
			u.UserType == in.UserType && newHash == "" {
			return nil
		}
		updates := map[string]any{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
			"email":      in.Email,
			"phone":      in.Phone,
			"user_type":  in.UserType,
		}
		if newHash != "" {
			updates["password_hash"] = newHash
		}
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// UpdateUserHash rewrites only the stored credential. Used by the login flow
// when verification reports the blob needs a rehash.
func (r *Repo) UpdateUserHash(ctx context.Context, id uint, hash string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundErr("user", id)
	}
	return nil
}

// DeleteUser refuses while any Pending loan references the user.
func (r *Repo) DeleteUser(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("user", id)
			}
			return err
		}
		var n int64
		if err := tx.Model(&models.Loan{}).
			Where("user_id = ? AND status = ?", id, models.StatusPending).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrPendingLoans
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Loan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

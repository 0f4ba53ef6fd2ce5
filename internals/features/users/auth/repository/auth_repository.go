package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "sciedu_backend/internals/features/users/auth/model"
	userModel "sciedu_backend/internals/features/users/user/model"
)

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("lower(email) = lower(?)", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var cnt int64
	if err := db.Model(&userModel.UserModel{}).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// IsTokenBlacklisted dipakai middleware AuthJWT lewat closure
func IsTokenBlacklisted(db *gorm.DB) func(rawToken string) (bool, error) {
	return func(rawToken string) (bool, error) {
		var existing authModel.TokenBlacklist
		err := db.Where("token = ?", rawToken).First(&existing).Error
		if err == nil {
			return true, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
}

func BlacklistToken(db *gorm.DB, rawToken string, expiredAt time.Time) error {
	return db.Create(&authModel.TokenBlacklist{
		Token:     rawToken,
		ExpiredAt: expiredAt,
	}).Error
}

func CreateRefreshToken(db *gorm.DB, rec *authModel.RefreshTokenModel) error {
	return db.Create(rec).Error
}

func RefreshTokenExists(db *gorm.DB, hash string) (bool, error) {
	var cnt int64
	if err := db.Model(&authModel.RefreshTokenModel{}).
		Where("token = ?", hash).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash string) error {
	return db.Where("token = ?", hash).Delete(&authModel.RefreshTokenModel{}).Error
}

func DeleteExpiredBlacklistEntries(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("expired_at < ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

package repository

import (
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) Update(u *entity.User) error {
	return r.DB.Save(u).Error
}

// HasRole checks that the user exists and carries the given role.
// Driver assignment uses it to reject non-driver ids.
func (r *UserRepository) HasRole(id uint, role string) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&cnt).Error
	return cnt > 0, err
}

package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"size:100;not null" json:"fullName"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"` // bcrypt hash
	DateOfBirth    time.Time `json:"dateOfBirth"`
	ProfilePicture string    `json:"profilePicture"` // 头像存储路径 (uploads/profile_pictures/...)
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	// No DeletedAt for hard delete
}

// Age 根据出生日期计算年龄
func (u *User) Age() int {
	if u.DateOfBirth.IsZero() {
		return 0
	}
	now := time.Now()
	age := now.Year() - u.DateOfBirth.Year()
	if now.YearDay() < u.DateOfBirth.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

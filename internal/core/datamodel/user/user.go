package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64           `gorm:"primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Email        string          `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         string          `gorm:"column:role;not null"`
	Salary       decimal.Decimal `gorm:"column:salary;type:numeric(12,2);not null"`
	JoinDate     time.Time       `gorm:"column:join_date;not null"`
	IsActive     bool            `gorm:"column:is_active;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one row per user per UTC day.
type Attendance struct {
	ID         int64           `gorm:"primaryKey"`
	UserID     int64           `gorm:"column:user_id;not null;uniqueIndex:idx_attendances_user_date"`
	Date       time.Time       `gorm:"column:date;not null;uniqueIndex:idx_attendances_user_date"`
	Status     string          `gorm:"column:status;not null"`
	TotalHours decimal.Decimal `gorm:"column:total_hours;type:numeric(6,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	TimeLog    *TimeLog        `gorm:"foreignKey:AttendanceID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// TimeLog holds the single check-in/check-out pair of an Attendance.
type TimeLog struct {
	ID           int64      `gorm:"primaryKey"`
	AttendanceID int64      `gorm:"column:attendance_id;not null;uniqueIndex"`
	CheckIn      time.Time  `gorm:"column:check_in;not null"`
	CheckOut     *time.Time `gorm:"column:check_out"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

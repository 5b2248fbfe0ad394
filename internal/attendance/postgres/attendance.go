package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-tracker/internal/core/daybucket"
	"github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo attendance.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &AttendanceRepository{db: tx})
	})
}

func (r *AttendanceRepository) FindByUserAndDate(ctx context.Context, userID int64, day time.Time) (*attendanceDatamodel.Attendance, error) {
	var rec attendanceDatamodel.Attendance
	err := r.db.WithContext(ctx).
		Preload("TimeLog").
		Where(`user_id = ? AND "date" = ?`, userID, daybucket.Of(day)).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &rec, nil
}

func (r *AttendanceRepository) CreateIfAbsent(ctx context.Context, rec *attendanceDatamodel.Attendance) error {
	rec.Date = daybucket.Of(rec.Date)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return fmt.Errorf("create attendance: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var existing attendanceDatamodel.Attendance
	if err := r.db.WithContext(ctx).
		Where(`user_id = ? AND "date" = ?`, rec.UserID, rec.Date).
		Take(&existing).Error; err != nil {
		return fmt.Errorf("reload attendance: %w", err)
	}
	*rec = existing
	return nil
}

func (r *AttendanceRepository) CreateTimeLog(ctx context.Context, log *attendanceDatamodel.TimeLog) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attendance_id"}},
			DoNothing: true,
		}).
		Create(log)
	if res.Error != nil {
		return false, fmt.Errorf("create time log: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *AttendanceRepository) CloseTimeLog(ctx context.Context, timeLogID int64, checkOut time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&attendanceDatamodel.TimeLog{}).
		Where("id = ? AND check_out IS NULL", timeLogID).
		Update("check_out", checkOut)
	if res.Error != nil {
		return false, fmt.Errorf("close time log: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *AttendanceRepository) UpdateTotalHours(ctx context.Context, attendanceID int64, hours decimal.Decimal) error {
	err := r.db.WithContext(ctx).
		Model(&attendanceDatamodel.Attendance{}).
		Where("id = ?", attendanceID).
		Update("total_hours", hours).Error
	if err != nil {
		return fmt.Errorf("update total hours: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID int64, month *daybucket.Range) ([]*attendanceDatamodel.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("TimeLog").
		Where("user_id = ?", userID)
	if month != nil {
		query = query.Where(`"date" >= ? AND "date" < ?`, month.Start, month.End)
	}

	var records []*attendanceDatamodel.Attendance
	if err := query.Order(`"date" DESC`).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}
	return records, nil
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, day time.Time) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance
	err := r.db.WithContext(ctx).
		Preload("TimeLog").
		Where(`"date" = ?`, daybucket.Of(day)).
		Order("user_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

// RosterRepository reads users for the daily report. It never writes.
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) attendance.Roster {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListMembers(ctx context.Context, role user.Role) ([]attendance.Member, error) {
	var rows []userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "is_active").
		Where("role = ?", string(role)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	members := make([]attendance.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, attendance.Member{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			IsActive: row.IsActive,
		})
	}
	return members, nil
}

package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/attendance-tracker/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/core/daybucket"
	"github.com/frahmantamala/attendance-tracker/internal/core/user"
	"github.com/shopspring/decimal"
)

// Repository is the attendance store. Implementations must enforce a unique
// (user_id, date) on records and a unique attendance_id on time logs.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
	// FindByUserAndDate returns nil, nil when no record exists.
	FindByUserAndDate(ctx context.Context, userID int64, day time.Time) (*attendanceDatamodel.Attendance, error)
	// CreateIfAbsent inserts the record or, when one already exists for the
	// same user and day, loads the existing row into rec.
	CreateIfAbsent(ctx context.Context, rec *attendanceDatamodel.Attendance) error
	// CreateTimeLog reports false when the record already has a time log.
	CreateTimeLog(ctx context.Context, log *attendanceDatamodel.TimeLog) (bool, error)
	// CloseTimeLog reports false when the time log was already closed.
	CloseTimeLog(ctx context.Context, timeLogID int64, checkOut time.Time) (bool, error)
	UpdateTotalHours(ctx context.Context, attendanceID int64, hours decimal.Decimal) error
	ListByUser(ctx context.Context, userID int64, month *daybucket.Range) ([]*attendanceDatamodel.Attendance, error)
	ListByDate(ctx context.Context, day time.Time) ([]*attendanceDatamodel.Attendance, error)
}

// Roster lists the users a daily report is built for.
type Roster interface {
	ListMembers(ctx context.Context, role user.Role) ([]Member, error)
}

type Service struct {
	repo   Repository
	roster Roster
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, roster Roster, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roster: roster,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to stamp check-ins and check-outs.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CheckIn(ctx context.Context, userID int64) (*Result, error) {
	now := s.now().UTC()
	today := daybucket.Of(now)

	var result *Result
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx Repository) error {
		existing, err := tx.FindByUserAndDate(ctx, userID, today)
		if err != nil {
			return err
		}

		rec := existing
		if rec != nil && rec.TimeLog != nil && !rec.TimeLog.CheckIn.IsZero() {
			return errors.ErrAlreadyCheckedIn
		}

		if rec == nil {
			rec = &attendanceDatamodel.Attendance{
				UserID:     userID,
				Date:       today,
				Status:     string(StatusPresent),
				TotalHours: decimal.Zero,
			}
			if err := tx.CreateIfAbsent(ctx, rec); err != nil {
				return err
			}
		}

		timeLog := &attendanceDatamodel.TimeLog{
			AttendanceID: rec.ID,
			CheckIn:      now,
		}
		inserted, err := tx.CreateTimeLog(ctx, timeLog)
		if err != nil {
			return err
		}
		if !inserted {
			return errors.ErrAlreadyCheckedIn
		}

		rec.TimeLog = nil
		result = &Result{
			Attendance: FromDataModel(rec),
			TimeLog:    TimeLogFromDataModel(timeLog),
		}
		return nil
	})
	if err != nil {
		s.logResult("check-in rejected", err, userID, today)
		return nil, err
	}

	s.logger.Info("attendance checked in",
		"user_id", userID,
		"attendance_id", result.Attendance.ID,
		"date", daybucket.Format(today))
	return result, nil
}

func (s *Service) CheckOut(ctx context.Context, userID int64) (*Result, error) {
	now := s.now().UTC()
	today := daybucket.Of(now)

	var result *Result
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx Repository) error {
		existing, err := tx.FindByUserAndDate(ctx, userID, today)
		if err != nil {
			return err
		}
		if existing == nil || existing.TimeLog == nil {
			return errors.ErrNoCheckInFound
		}
		if existing.TimeLog.CheckOut != nil {
			return errors.ErrAlreadyCheckedOut
		}

		hours := WorkedHours(existing.TimeLog.CheckIn, now)

		closed, err := tx.CloseTimeLog(ctx, existing.TimeLog.ID, now)
		if err != nil {
			return err
		}
		if !closed {
			return errors.ErrAlreadyCheckedOut
		}
		if err := tx.UpdateTotalHours(ctx, existing.ID, hours); err != nil {
			return err
		}

		timeLog := TimeLogFromDataModel(existing.TimeLog)
		timeLog.CheckOut = &now

		existing.TimeLog = nil
		existing.TotalHours = hours
		result = &Result{
			Attendance: FromDataModel(existing),
			TimeLog:    timeLog,
		}
		return nil
	})
	if err != nil {
		s.logResult("check-out rejected", err, userID, today)
		return nil, err
	}

	s.logger.Info("attendance checked out",
		"user_id", userID,
		"attendance_id", result.Attendance.ID,
		"date", daybucket.Format(today),
		"total_hours", result.Attendance.TotalHours.StringFixed(2))
	return result, nil
}

// MyAttendance returns the caller's records, newest first, optionally limited
// to a "YYYY-MM" month. An unparseable month means no filter.
func (s *Service) MyAttendance(ctx context.Context, userID int64, month string) (*Summary, error) {
	return s.history(ctx, userID, month)
}

func (s *Service) EmployeeAttendance(ctx context.Context, employeeID int64, month string) (*Summary, error) {
	return s.history(ctx, employeeID, month)
}

func (s *Service) DayAttendance(ctx context.Context, day time.Time) (*DayReport, error) {
	day = daybucket.Of(day)

	members, err := s.roster.ListMembers(ctx, user.RoleEmployee)
	if err != nil {
		s.logger.Error("failed to load roster", "error", err)
		return nil, fmt.Errorf("list roster: %w", err)
	}

	rows, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		s.logger.Error("failed to load day attendance", "error", err, "date", daybucket.Format(day))
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromDataModel(row))
	}

	return &DayReport{
		Date:    day,
		Entries: MergeRoster(members, records),
	}, nil
}

// ExportEmployeeAttendance renders EmployeeAttendance as an XLSX workbook.
func (s *Service) ExportEmployeeAttendance(ctx context.Context, employeeID int64, month string) (*bytes.Buffer, error) {
	summary, err := s.history(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := WriteWorkbook(buf, summary); err != nil {
		s.logger.Error("failed to render attendance workbook", "error", err, "user_id", employeeID)
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf, nil
}

func (s *Service) history(ctx context.Context, userID int64, month string) (*Summary, error) {
	var filter *daybucket.Range
	if r, ok := daybucket.MonthRange(month); ok {
		filter = &r
	}

	rows, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to load attendance history", "error", err, "user_id", userID, "month", month)
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromDataModel(row))
	}
	return Summarize(records), nil
}

func (s *Service) logResult(msg string, err error, userID int64, day time.Time) {
	if _, ok := errors.IsAppError(err); ok {
		s.logger.Info(msg, "reason", err.Error(), "user_id", userID, "date", daybucket.Format(day))
		return
	}
	s.logger.Error(msg, "error", err, "user_id", userID, "date", daybucket.Format(day))
}

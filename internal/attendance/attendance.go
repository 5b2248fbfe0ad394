package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	// StatusAbsent is only ever synthesized for roster days without a record.
	StatusAbsent Status = "ABSENT"
)

const millisPerHour = 3_600_000

type TimeLog struct {
	ID           int64
	AttendanceID int64
	CheckIn      time.Time
	CheckOut     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Record struct {
	ID         int64
	UserID     int64
	Date       time.Time
	Status     Status
	TotalHours decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TimeLog    *TimeLog
}

func (r *Record) CheckedIn() bool {
	return r.TimeLog != nil && !r.TimeLog.CheckIn.IsZero()
}

func (r *Record) CheckedOut() bool {
	return r.TimeLog != nil && r.TimeLog.CheckOut != nil
}

// Result is returned by the check-in and check-out operations.
type Result struct {
	Attendance *Record
	TimeLog    *TimeLog
}

// Summary is a list of records together with the sum of their hours.
type Summary struct {
	Records    []*Record
	TotalHours decimal.Decimal
}

// Member is a roster entry used to build the daily report.
type Member struct {
	ID       int64
	Name     string
	Email    string
	IsActive bool
}

type DayEntry struct {
	UserID     int64
	Name       string
	Email      string
	Status     Status
	TotalHours decimal.Decimal
	TimeLog    *TimeLog
}

type DayReport struct {
	Date    time.Time
	Entries []DayEntry
}

// WorkedHours rounds the elapsed time to two decimals, half up. A check-out
// that precedes its check-in yields zero.
func WorkedHours(checkIn, checkOut time.Time) decimal.Decimal {
	ms := checkOut.Sub(checkIn).Milliseconds()
	if ms <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(ms).Div(decimal.NewFromInt(millisPerHour)).Round(2)
}

func Summarize(records []*Record) *Summary {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalHours)
	}
	return &Summary{Records: records, TotalHours: total}
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Record {
	if a == nil {
		return nil
	}
	return &Record{
		ID:         a.ID,
		UserID:     a.UserID,
		Date:       a.Date.UTC(),
		Status:     Status(a.Status),
		TotalHours: a.TotalHours,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		TimeLog:    TimeLogFromDataModel(a.TimeLog),
	}
}

func TimeLogFromDataModel(t *attendanceDatamodel.TimeLog) *TimeLog {
	if t == nil {
		return nil
	}
	return &TimeLog{
		ID:           t.ID,
		AttendanceID: t.AttendanceID,
		CheckIn:      t.CheckIn.UTC(),
		CheckOut:     utcPtr(t.CheckOut),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

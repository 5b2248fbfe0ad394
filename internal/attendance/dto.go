package attendance

import (
	"time"
)

type TimeLogResponse struct {
	ID           int64      `json:"id"`
	AttendanceID int64      `json:"attendanceId"`
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// RecordResponse is the bare attendance row.
type RecordResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	TotalHours float64   `json:"totalHours"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AttendanceResponse is a history row; timeLog is null for a record that was
// never checked into.
type AttendanceResponse struct {
	RecordResponse
	TimeLog *TimeLogResponse `json:"timeLog"`
}

type LifecycleResponse struct {
	Attendance RecordResponse   `json:"attendance"`
	TimeLog    *TimeLogResponse `json:"timeLog"`
}

type HistoryResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
	TotalHours float64              `json:"totalHours"`
}

type DayEntryResponse struct {
	UserID     int64            `json:"userId"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Status     Status           `json:"status"`
	TotalHours float64          `json:"totalHours"`
	TimeLog    *TimeLogResponse `json:"timeLog"`
}

type DayResponse struct {
	Date time.Time          `json:"date"`
	List []DayEntryResponse `json:"list"`
}

func NewTimeLogResponse(t *TimeLog) *TimeLogResponse {
	if t == nil {
		return nil
	}
	return &TimeLogResponse{
		ID:           t.ID,
		AttendanceID: t.AttendanceID,
		CheckIn:      t.CheckIn,
		CheckOut:     t.CheckOut,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func NewRecordResponse(r *Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date,
		Status:     r.Status,
		TotalHours: r.TotalHours.InexactFloat64(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func NewAttendanceResponse(r *Record) AttendanceResponse {
	return AttendanceResponse{
		RecordResponse: NewRecordResponse(r),
		TimeLog:        NewTimeLogResponse(r.TimeLog),
	}
}

func NewLifecycleResponse(res *Result) LifecycleResponse {
	return LifecycleResponse{
		Attendance: NewRecordResponse(res.Attendance),
		TimeLog:    NewTimeLogResponse(res.TimeLog),
	}
}

func NewHistoryResponse(s *Summary) HistoryResponse {
	list := make([]AttendanceResponse, 0, len(s.Records))
	for _, r := range s.Records {
		list = append(list, NewAttendanceResponse(r))
	}
	return HistoryResponse{
		Attendance: list,
		TotalHours: s.TotalHours.InexactFloat64(),
	}
}

func NewDayResponse(report *DayReport) DayResponse {
	list := make([]DayEntryResponse, 0, len(report.Entries))
	for _, e := range report.Entries {
		list = append(list, DayEntryResponse{
			UserID:     e.UserID,
			Name:       e.Name,
			Email:      e.Email,
			Status:     e.Status,
			TotalHours: e.TotalHours.InexactFloat64(),
			TimeLog:    NewTimeLogResponse(e.TimeLog),
		})
	}
	return DayResponse{Date: report.Date, List: list}
}

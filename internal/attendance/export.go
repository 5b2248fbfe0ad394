package attendance

import (
	"fmt"
	"io"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/core/daybucket"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "Attendance"
	exportTimeLayout = "15:04:05"
)

var exportHeader = []interface{}{"Date", "Status", "Check In (UTC)", "Check Out (UTC)", "Total Hours"}

// WriteWorkbook writes one row per record followed by a total row.
func WriteWorkbook(w io.Writer, summary *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	for i, rec := range summary.Records {
		checkIn, checkOut := "", ""
		if rec.TimeLog != nil {
			checkIn = formatClock(rec.TimeLog.CheckIn)
			if rec.TimeLog.CheckOut != nil {
				checkOut = formatClock(*rec.TimeLog.CheckOut)
			}
		}

		row := []interface{}{
			daybucket.Format(rec.Date),
			string(rec.Status),
			checkIn,
			checkOut,
			rec.TotalHours.InexactFloat64(),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	total := []interface{}{"Total", "", "", "", summary.TotalHours.InexactFloat64()}
	if err := setRow(f, len(summary.Records)+2, total); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	return f.SetSheetRow(exportSheet, cell, &values)
}

func formatClock(t time.Time) string {
	return t.UTC().Format(exportTimeLayout)
}

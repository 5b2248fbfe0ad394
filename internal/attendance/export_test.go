package attendance_test

import (
	"bytes"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("WriteWorkbook", func() {
	It("writes a header, one row per record and a total row", func() {
		checkIn := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
		checkOut := time.Date(2024, 2, 1, 17, 30, 0, 0, time.UTC)
		summary := attendance.Summarize([]*attendance.Record{
			{
				Date:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Status:     attendance.StatusPresent,
				TotalHours: decimal.RequireFromString("8.5"),
				TimeLog:    &attendance.TimeLog{CheckIn: checkIn, CheckOut: &checkOut},
			},
			{
				Date:       time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
				Status:     attendance.StatusPresent,
				TotalHours: decimal.Zero,
				TimeLog:    &attendance.TimeLog{CheckIn: checkIn.AddDate(0, 0, 1)},
			},
		})

		buf := &bytes.Buffer{}
		Expect(attendance.WriteWorkbook(buf, summary)).To(Succeed())

		f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Attendance")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(4))
		Expect(rows[0]).To(Equal([]string{"Date", "Status", "Check In (UTC)", "Check Out (UTC)", "Total Hours"}))
		Expect(rows[1]).To(Equal([]string{"2024-02-01", "PRESENT", "09:00:00", "17:30:00", "8.5"}))
		Expect(rows[2][0]).To(Equal("2024-02-02"))
		Expect(rows[2][3]).To(BeEmpty())
		Expect(rows[3][0]).To(Equal("Total"))
		Expect(rows[3][4]).To(Equal("8.5"))
	})
})

package attendance_test

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("MergeRoster", func() {
	roster := []attendance.Member{
		{ID: 3, Name: "Citra", Email: "citra@local.test"},
		{ID: 1, Name: "Ana", Email: "ana@local.test"},
		{ID: 2, Name: "Budi", Email: "budi@local.test"},
	}

	It("keeps roster order and synthesizes absences", func() {
		checkIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
		records := []*attendance.Record{
			{
				ID:         10,
				UserID:     1,
				Status:     attendance.StatusPresent,
				TotalHours: decimal.RequireFromString("7.5"),
				TimeLog:    &attendance.TimeLog{ID: 20, AttendanceID: 10, CheckIn: checkIn},
			},
		}

		entries := attendance.MergeRoster(roster, records)

		Expect(entries).To(HaveLen(3))
		Expect([]int64{entries[0].UserID, entries[1].UserID, entries[2].UserID}).To(Equal([]int64{3, 1, 2}))

		Expect(entries[0].Status).To(Equal(attendance.StatusAbsent))
		Expect(entries[0].TimeLog).To(BeNil())
		Expect(entries[0].TotalHours.IsZero()).To(BeTrue())

		Expect(entries[1].Name).To(Equal("Ana"))
		Expect(entries[1].Status).To(Equal(attendance.StatusPresent))
		Expect(entries[1].TotalHours.StringFixed(2)).To(Equal("7.50"))
		Expect(entries[1].TimeLog.ID).To(Equal(int64(20)))

		Expect(entries[2].Status).To(Equal(attendance.StatusAbsent))
	})

	It("ignores records of users outside the roster", func() {
		records := []*attendance.Record{{UserID: 99, Status: attendance.StatusPresent}}

		entries := attendance.MergeRoster(roster, records)

		Expect(entries).To(HaveLen(3))
		for _, e := range entries {
			Expect(e.Status).To(Equal(attendance.StatusAbsent))
		}
	})

	It("returns an empty list for an empty roster", func() {
		Expect(attendance.MergeRoster(nil, nil)).To(BeEmpty())
	})
})

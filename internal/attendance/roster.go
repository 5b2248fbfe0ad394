package attendance

import "github.com/shopspring/decimal"

// MergeRoster left-joins the roster with one day's records. Every member
// appears once, in roster order; members without a record are ABSENT with
// zero hours and no time log.
func MergeRoster(roster []Member, records []*Record) []DayEntry {
	byUser := make(map[int64]*Record, len(records))
	for _, r := range records {
		byUser[r.UserID] = r
	}

	entries := make([]DayEntry, 0, len(roster))
	for _, m := range roster {
		entry := DayEntry{
			UserID:     m.ID,
			Name:       m.Name,
			Email:      m.Email,
			Status:     StatusAbsent,
			TotalHours: decimal.Zero,
		}
		if r, ok := byUser[m.ID]; ok {
			entry.Status = r.Status
			entry.TotalHours = r.TotalHours
			entry.TimeLog = r.TimeLog
		}
		entries = append(entries, entry)
	}
	return entries
}

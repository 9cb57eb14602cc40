package attendance

import (
	"sort"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/kst"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
)

// GroupWeek is the per-yohoe slice of a week view.
type GroupWeek struct {
	Yohoe              models.Yohoe
	CurrentWeekReport  *models.Report
	PreviousWeekReport *models.Report
}

// WeekTotals holds category sums across all groups for one week.
type WeekTotals struct {
	Total           int
	OneToOne        int
	AttendedLeaders int
	AbsentLeaders   int
	Yang            int
	Freshmen        int
	Others          int
}

// HistoryEntry is one week of the rolling historical series.
// Shin is the freshmen count; the legacy export name is kept so exports
// stay byte-compatible.
type HistoryEntry struct {
	WeekOffset      int
	SundayDate      string
	Total           int
	OneToOne        int
	AttendedLeaders int
	AbsentLeaders   int
	Yang            int
	Shin            int
}

// SumVariant selects which attendee-sum formula SumWeekTotals applies.
type SumVariant int

const (
	// SumCurrent uses AttendeeSum.
	SumCurrent SumVariant = iota
	// SumLegacy uses LegacyAttendeeSum with the group's leader count.
	SumLegacy
)

// ReportSelector picks which report of a GroupWeek a totals pass reads.
type ReportSelector func(GroupWeek) *models.Report

// CurrentWeek selects the current-week report of an entry.
func CurrentWeek(e GroupWeek) *models.Report { return e.CurrentWeekReport }

// PreviousWeek selects the previous-week report of an entry.
func PreviousWeek(e GroupWeek) *models.Report { return e.PreviousWeekReport }

// SelectEffectiveReport resolves duplicate submissions for one group and
// week down to the single effective report: the latest by updated_at, then
// created_at, then report_date. Records with all three equal keep the
// earlier position, so the reduction is deterministic for any input order.
// Returns nil for an empty candidate list.
func SelectEffectiveReport(candidates []models.Report) *models.Report {
	if len(candidates) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if reportLater(candidates[i], candidates[best]) {
			best = i
		}
	}
	effective := candidates[best]
	return &effective
}

// reportLater reports whether a supersedes b under the three-level
// updated_at -> created_at -> report_date fallback. Exact ties are not
// "later", which keeps the earlier record on ties.
func reportLater(a, b models.Report) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ReportDate > b.ReportDate
}

// SortYohoe orders groups for display: order_num ascending with nil last,
// ties broken by creation time ascending. Returns a new slice.
func SortYohoe(groups []models.Yohoe) []models.Yohoe {
	sorted := make([]models.Yohoe, len(groups))
	copy(sorted, groups)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.OrderNum != nil && b.OrderNum != nil:
			if *a.OrderNum != *b.OrderNum {
				return *a.OrderNum < *b.OrderNum
			}
		case a.OrderNum != nil:
			return true
		case b.OrderNum != nil:
			return false
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return sorted
}

// BuildWeekView computes the per-group view for the week containing
// targetDate and the immediately preceding week. Reports whose date cannot
// be normalized are excluded from both buckets. Groups come back in display
// order. Returns ok=false only when targetDate itself is unparseable.
func BuildWeekView(groups []models.Yohoe, reports []models.Report, targetDate string) ([]GroupWeek, bool) {
	current, ok := kst.WeekRangeOf(targetDate)
	if !ok {
		return nil, false
	}
	prevSunday, _ := kst.AddWeeks(current.Sunday, -1)
	previous, _ := kst.WeekRangeOf(prevSunday)

	// Bucket once, keyed by group, rather than rescanning reports per group.
	currentByGroup := make(map[int64][]models.Report)
	previousByGroup := make(map[int64][]models.Report)
	for _, r := range reports {
		day, ok := kst.NormalizeDay(r.ReportDate)
		if !ok {
			continue
		}
		switch {
		case current.Contains(day):
			currentByGroup[r.YohoeID] = append(currentByGroup[r.YohoeID], NormalizeReport(r))
		case previous.Contains(day):
			previousByGroup[r.YohoeID] = append(previousByGroup[r.YohoeID], NormalizeReport(r))
		}
	}

	entries := make([]GroupWeek, 0, len(groups))
	for _, g := range SortYohoe(groups) {
		entries = append(entries, GroupWeek{
			Yohoe:              g,
			CurrentWeekReport:  SelectEffectiveReport(currentByGroup[g.ID]),
			PreviousWeekReport: SelectEffectiveReport(previousByGroup[g.ID]),
		})
	}
	return entries, true
}

// SumWeekTotals sums category totals across all group entries. An entry
// whose selected report is nil contributes zero to every field; it is not
// skipped, so every group slot is always accounted for.
func SumWeekTotals(entries []GroupWeek, selector ReportSelector, variant SumVariant) WeekTotals {
	var totals WeekTotals
	for _, e := range entries {
		r := selector(e)
		if r == nil {
			continue // explicit zero contribution
		}
		switch variant {
		case SumLegacy:
			totals.Total += LegacyAttendeeSum(*r, e.Yohoe.LeaderCount)
		default:
			totals.Total += AttendeeSum(*r)
		}
		totals.OneToOne += r.OneToOneCount
		totals.AttendedLeaders += r.AttendedLeadersCount
		totals.AbsentLeaders += r.AbsentLeadersCount
		totals.Yang += YangSum(*r)
		totals.Freshmen += r.AttendedFreshmenCount
		totals.Others += r.AttendedOthersCount
	}
	return totals
}

// BuildHistoricalSeries sums weekCount past weeks, starting one week before
// the week containing targetDate. Every report in a week is summed directly,
// without per-group effective-report resolution and without a group join, so
// orphaned reports still count here. Entries come back ordered by increasing
// offset (most recent past week first).
func BuildHistoricalSeries(reports []models.Report, targetDate string, weekCount int) []HistoryEntry {
	targetSunday, ok := kst.SundayOf(targetDate)
	if !ok || weekCount <= 0 {
		return nil
	}

	series := make([]HistoryEntry, 0, weekCount)
	for offset := 1; offset <= weekCount; offset++ {
		sunday, _ := kst.AddWeeks(targetSunday, -offset)
		week, _ := kst.WeekRangeOf(sunday)

		entry := HistoryEntry{WeekOffset: offset, SundayDate: sunday}
		for _, r := range reports {
			day, ok := kst.NormalizeDay(r.ReportDate)
			if !ok || !week.Contains(day) {
				continue
			}
			n := NormalizeReport(r)
			entry.Total += AttendeeSum(n)
			entry.OneToOne += n.OneToOneCount
			entry.AttendedLeaders += n.AttendedLeadersCount
			entry.AbsentLeaders += n.AbsentLeadersCount
			entry.Yang += YangSum(n)
			entry.Shin += n.AttendedFreshmenCount
		}
		series = append(series, entry)
	}
	return series
}

// OrphanReportCount counts reports whose yohoe_id matches no known group.
// Orphans never appear in group-keyed views but do count in historical
// sums; callers can surface this as a data-integrity diagnostic.
func OrphanReportCount(groups []models.Yohoe, reports []models.Report) int {
	known := make(map[int64]struct{}, len(groups))
	for _, g := range groups {
		known[g.ID] = struct{}{}
	}

	orphans := 0
	for _, r := range reports {
		if _, ok := known[r.YohoeID]; !ok {
			orphans++
		}
	}
	return orphans
}

// Package reports derives dashboard figures from the in-memory order set.
// Nothing here touches the store; callers pass the orders they already hold
// (typically the latest subscription snapshot).
package reports

import (
	"sort"
	"time"

	"github.com/sai-laundry/laundry-backend/internal/orders"
)

// Summary is the windowed metric block shown at the top of the dashboard.
// Revenue counts Completed orders only: pending work is not income yet.
// Trend percentages are nil when the previous window had nothing to compare
// against, never infinity or NaN.
type Summary struct {
	Label        string   `json:"label"`
	Revenue      float64  `json:"revenue"`
	Orders       int      `json:"orders"`
	Pending      int      `json:"pending"`
	PrevRevenue  float64  `json:"prevRevenue"`
	PrevOrders   int      `json:"prevOrders"`
	RevenueTrend *float64 `json:"revenueTrend,omitempty"`
	OrdersTrend  *float64 `json:"ordersTrend,omitempty"`
}

// Bucket is one period of a rolling table.
type Bucket struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DayGroup is one calendar day of the grouped order list.
type DayGroup struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Orders []orders.Order `json:"orders"`
}

// orderDate returns the creation time, or false for orders that never got a
// timestamp; those cannot be placed in any bucket.
func orderDate(o orders.Order) (time.Time, bool) {
	if o.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	return o.CreatedAt, true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func dayKey(t time.Time) string   { return t.Format("2006-01-02") }
func monthKey(t time.Time) string { return t.Format("2006-01") }

func summarize(all []orders.Order, in func(time.Time) bool, prev func(time.Time) bool, label string) Summary {
	s := Summary{Label: label}
	for _, o := range all {
		d, ok := orderDate(o)
		if !ok {
			continue
		}
		if in(d) {
			s.Orders++
			if o.Status == orders.StatusCompleted {
				s.Revenue += o.TotalAmount
			} else {
				s.Pending++
			}
		}
		if prev(d) {
			s.PrevOrders++
			if o.Status == orders.StatusCompleted {
				s.PrevRevenue += o.TotalAmount
			}
		}
	}
	s.RevenueTrend = trend(s.Revenue, s.PrevRevenue)
	s.OrdersTrend = trend(float64(s.Orders), float64(s.PrevOrders))
	return s
}

// trend returns the percentage change from prev to curr, or nil when prev is
// zero (no previous-period orders means the trend is undefined).
func trend(curr, prev float64) *float64 {
	if prev <= 0 {
		return nil
	}
	t := (curr - prev) / prev * 100
	return &t
}

// SummarizeDay computes the metric block for one calendar day, with the
// previous day as the comparison window.
func SummarizeDay(all []orders.Order, day time.Time, now time.Time) Summary {
	prevDay := day.AddDate(0, 0, -1)
	label := day.Format("2 Jan 2006")
	if sameDay(day, now) {
		label = "Today"
	}
	return summarize(all,
		func(d time.Time) bool { return sameDay(d, day) },
		func(d time.Time) bool { return sameDay(d, prevDay) },
		label)
}

// SummarizeMonth computes the metric block for one calendar month, with the
// previous month as the comparison window.
func SummarizeMonth(all []orders.Order, month time.Time) Summary {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	prev := start.AddDate(0, -1, 0)
	return summarize(all,
		func(d time.Time) bool { return sameMonth(d, start) },
		func(d time.Time) bool { return sameMonth(d, prev) },
		start.Format("Jan 2006"))
}

// LastNDays buckets orders by calendar day for the n most recent days,
// current (incomplete) day first. Every period is present, zero-filled when
// empty.
func LastNDays(all []orders.Order, now time.Time, n int) []Bucket {
	byDay := map[string]*Bucket{}
	for _, o := range all {
		d, ok := orderDate(o)
		if !ok {
			continue
		}
		k := dayKey(d)
		b, exists := byDay[k]
		if !exists {
			b = &Bucket{}
			byDay[k] = b
		}
		b.Orders++
		if o.Status == orders.StatusCompleted {
			b.Revenue += o.TotalAmount
		}
	}

	result := make([]Bucket, 0, n)
	for i := 0; i < n; i++ {
		d := now.AddDate(0, 0, -i)
		k := dayKey(d)
		b := Bucket{Key: k, Label: d.Format("Mon 2 Jan")}
		if found, ok := byDay[k]; ok {
			b.Revenue = found.Revenue
			b.Orders = found.Orders
		}
		result = append(result, b)
	}
	return result
}

// LastNMonths buckets orders by calendar month for the n most recent months,
// current (incomplete) month first.
func LastNMonths(all []orders.Order, now time.Time, n int) []Bucket {
	byMonth := map[string]*Bucket{}
	for _, o := range all {
		d, ok := orderDate(o)
		if !ok {
			continue
		}
		k := monthKey(d)
		b, exists := byMonth[k]
		if !exists {
			b = &Bucket{}
			byMonth[k] = b
		}
		b.Orders++
		if o.Status == orders.StatusCompleted {
			b.Revenue += o.TotalAmount
		}
	}

	result := make([]Bucket, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < n; i++ {
		d := first.AddDate(0, -i, 0)
		k := monthKey(d)
		b := Bucket{Key: k, Label: d.Format("Jan")}
		if found, ok := byMonth[k]; ok {
			b.Revenue = found.Revenue
			b.Orders = found.Orders
		}
		result = append(result, b)
	}
	return result
}

// GroupByDay buckets orders by creation day, most recent day first, labeled
// Today / Yesterday / formatted date. Orders without a creation timestamp
// appear in no group.
func GroupByDay(all []orders.Order, now time.Time) []DayGroup {
	byDay := map[string]*DayGroup{}
	var keys []string
	for _, o := range all {
		d, ok := orderDate(o)
		if !ok {
			continue
		}
		k := dayKey(d)
		g, exists := byDay[k]
		if !exists {
			label := d.Format("2 Jan 2006")
			if sameDay(d, now) {
				label = "Today"
			} else if sameDay(d, now.AddDate(0, 0, -1)) {
				label = "Yesterday"
			}
			g = &DayGroup{Key: k, Label: label}
			byDay[k] = g
			keys = append(keys, k)
		}
		g.Orders = append(g.Orders, o)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	result := make([]DayGroup, 0, len(keys))
	for _, k := range keys {
		g := byDay[k]
		// newest orders first within the day
		sort.Slice(g.Orders, func(i, j int) bool {
			return g.Orders[i].CreatedAt.After(g.Orders[j].CreatedAt)
		})
		result = append(result, *g)
	}
	return result
}

package domain

import "sort"

// priorityRank and categoryRank are sort weights only, never stored.
var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

var categoryRank = map[Category]int{
	CategoryClient:   4,
	CategoryLead:     3,
	CategoryInternal: 2,
	CategorySpam:     1,
}

// PriorityRank returns the sort weight of a priority. Unclassified
// emails (nil) rank below every real priority.
func PriorityRank(p *Priority) int {
	if p == nil {
		return 0
	}
	return priorityRank[*p]
}

// CategoryRank returns the sort weight of a category. Unclassified is 0.
func CategoryRank(c *Category) int {
	if c == nil {
		return 0
	}
	return categoryRank[*c]
}

// SortByRelevance orders emails in place: higher priority first, then most
// recently received, then persisted board order. The sort is stable, so
// equal-key emails keep their input order.
func SortByRelevance(emails []*Email) {
	sort.SliceStable(emails, func(i, j int) bool {
		a, b := emails[i], emails[j]
		if pa, pb := PriorityRank(a.Priority), PriorityRank(b.Priority); pa != pb {
			return pa > pb
		}
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.After(b.ReceivedAt)
		}
		return a.KanbanOrder < b.KanbanOrder
	})
}

// SortByCategory orders emails in place like SortByRelevance but breaks
// priority ties by category weight before recency.
func SortByCategory(emails []*Email) {
	sort.SliceStable(emails, func(i, j int) bool {
		a, b := emails[i], emails[j]
		if pa, pb := PriorityRank(a.Priority), PriorityRank(b.Priority); pa != pb {
			return pa > pb
		}
		if ca, cb := CategoryRank(a.Category), CategoryRank(b.Category); ca != cb {
			return ca > cb
		}
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.After(b.ReceivedAt)
		}
		return a.KanbanOrder < b.KanbanOrder
	})
}

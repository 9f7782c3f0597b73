package campaign

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeStats folds a donation event list into campaign-level statistics.
// Progress is capped at 100; the campaign deactivates the moment the total
// reaches the goal exactly (strict less-than).
func ComputeStats(events []domain.DonationEvent, goal decimal.Decimal) domain.CampaignStats {
	total := decimal.Zero
	for _, e := range events {
		total = total.Add(e.Amount)
	}

	progress := decimal.Zero
	if goal.IsPositive() {
		progress = total.Div(goal).Mul(hundred)
		if progress.GreaterThan(hundred) {
			progress = hundred
		}
	}

	if events == nil {
		events = []domain.DonationEvent{}
	}

	return domain.CampaignStats{
		TotalRaised:        total,
		Goal:               goal,
		ProgressPercentage: progress,
		IsActive:           total.LessThan(goal),
		Donations:          events,
		DonorsCount:        len(events),
	}
}

// ComputeTopDonors groups events by exact donor name and returns the top
// groups by total donated, plus the count of distinct donors regardless of
// limit. Events are folded in ascending timestamp order so FirstDonation is
// the donor's earliest observed donation; the descending sort is stable, so
// equal totals keep their earliest-donor-first order.
func ComputeTopDonors(events []domain.DonationEvent, limit int) ([]domain.DonorAggregate, int) {
	if limit <= 0 {
		limit = 10
	}

	ascending := make([]domain.DonationEvent, len(events))
	copy(ascending, events)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Timestamp < ascending[j].Timestamp
	})

	byName := make(map[string]*domain.DonorAggregate)
	order := make([]string, 0)

	for _, e := range ascending {
		agg, ok := byName[e.DonorName]
		if !ok {
			byName[e.DonorName] = &domain.DonorAggregate{
				DonorName:     e.DonorName,
				Total:         e.Amount,
				Count:         1,
				FirstDonation: e.Timestamp,
			}
			order = append(order, e.DonorName)
			continue
		}
		agg.Total = agg.Total.Add(e.Amount)
		agg.Count++
	}

	top := make([]domain.DonorAggregate, 0, len(order))
	for _, name := range order {
		top = append(top, *byName[name])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Total.GreaterThan(top[j].Total)
	})

	unique := len(top)
	if len(top) > limit {
		top = top[:limit]
	}
	return top, unique
}

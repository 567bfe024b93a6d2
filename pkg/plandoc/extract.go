package plandoc

import "github.com/shopspring/decimal"

// maxDestinationRunes matches the width of travel_plans.destination.
const maxDestinationRunes = 100

type Fields struct {
	Destination string
	Duration    int
	TotalBudget decimal.Decimal
}

// Extract never fails: missing or mistyped fields take their defaults.
func Extract(doc string) Fields {
	d := Parse(doc)

	fields := Fields{
		Destination: UnknownDestination,
		Duration:    DefaultDuration,
	}
	if dest, ok := d.String("destination"); ok {
		fields.Destination = truncateRunes(dest, maxDestinationRunes)
	}
	if days, ok := d.Int("duration"); ok {
		fields.Duration = days
	}
	fields.TotalBudget = totalBudget(d)

	return fields
}

// totalBudget prefers a positive top-level totalBudget, then the sum of the
// activity budgets, then DefaultTotalBudget when that sum is zero.
func totalBudget(d Document) decimal.Decimal {
	if total, ok := d.Decimal("totalBudget"); ok && total.IsPositive() {
		return total
	}

	sum := decimal.Zero
	for _, day := range d.Days() {
		for _, act := range day.Activities {
			if act.HasBudget {
				sum = sum.Add(act.Budget)
			}
		}
	}
	if sum.IsZero() {
		return DefaultTotalBudget
	}
	return sum
}

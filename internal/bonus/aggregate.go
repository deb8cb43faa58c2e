package bonus

import "fmt"

// Aggregate merges bonuses that share a KindID into one.
//
// Pets-scoped bonuses are aggregated among themselves and re-wrapped.
// Non-aggregatable bonuses pass through untouched. The result holds the
// pass-through bonuses in input order, then the pets group, then one merged
// bonus per KindID in first-seen order.
func Aggregate(list []Bonus) ([]Bonus, error) {
	var (
		passthrough []Bonus
		pets        []Bonus
		order       []string
	)
	merged := make(map[string]Bonus)

	for _, b := range list {
		if p, ok := b.(Pets); ok {
			pets = append(pets, p.Inner)
			continue
		}
		if !b.IsAggregatable() {
			passthrough = append(passthrough, b)
			continue
		}

		id := b.KindID()
		cur, ok := merged[id]
		if !ok {
			merged[id] = b
			order = append(order, id)
			continue
		}
		sum, err := cur.MergeWith(b)
		if err != nil {
			return nil, fmt.Errorf("merging %s: %w", id, err)
		}
		merged[id] = sum
	}

	out := make([]Bonus, 0, len(passthrough)+len(pets)+len(order))
	out = append(out, passthrough...)

	if len(pets) > 0 {
		petGroup, err := Aggregate(pets)
		if err != nil {
			return nil, fmt.Errorf("aggregating pet bonuses: %w", err)
		}
		for _, b := range petGroup {
			out = append(out, Pets{Inner: b})
		}
	}

	for _, id := range order {
		out = append(out, merged[id])
	}
	return out, nil
}

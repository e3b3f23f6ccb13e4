package core

// TotalCost returns the sum of all record costs.
func TotalCost(records []ExpenseRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.Cost
	}
	return total
}

// SumByCategory aggregates costs per category name, preserving the order in
// which each category first appears.
func SumByCategory(records []ExpenseRecord) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, CategoryTotal{Name: r.Category})
		}
		totals[i].Total += r.Cost
	}
	return totals
}

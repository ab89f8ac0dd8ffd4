package formulas

import "sort"

// YearRevenue is one (name, year, revenue) observation.
type YearRevenue struct {
	Name    string
	Year    int
	Revenue float64
}

// YearGrowth is a year's revenue and its growth versus the next older year.
// Growth is nil for the oldest year and when the older year had no revenue.
type YearGrowth struct {
	Year    int      `json:"year"`
	Revenue float64  `json:"total_revenue"`
	Growth  *float64 `json:"growth"`
}

// GrowthGroup holds all years of a single name, newest first.
type GrowthGroup struct {
	Name  string       `json:"product_name"`
	Years []YearGrowth `json:"years"`
}

// GroupYearOverYear groups rows by name in order of first appearance, sorts
// each group's years descending and computes growth against the next older
// year. Only the first row for a given (name, year) pair is used.
func GroupYearOverYear(rows []YearRevenue) []GrowthGroup {
	index := make(map[string]int)
	seen := make(map[string]map[int]bool)
	var groups []GrowthGroup

	for _, row := range rows {
		i, ok := index[row.Name]
		if !ok {
			i = len(groups)
			index[row.Name] = i
			seen[row.Name] = make(map[int]bool)
			groups = append(groups, GrowthGroup{Name: row.Name})
		}
		if seen[row.Name][row.Year] {
			continue
		}
		seen[row.Name][row.Year] = true
		groups[i].Years = append(groups[i].Years, YearGrowth{Year: row.Year, Revenue: row.Revenue})
	}

	for gi := range groups {
		years := groups[gi].Years
		sort.SliceStable(years, func(a, b int) bool { return years[a].Year > years[b].Year })

		for yi := 0; yi < len(years)-1; yi++ {
			older := years[yi+1].Revenue
			if older == 0 {
				continue
			}
			g := PercentChange(years[yi].Revenue, older)
			years[yi].Growth = &g
		}
	}

	return groups
}

// YearOverYear returns the growth of name between currentYear and any other
// year present in rows. Missing or zero previous revenue yields 0.
func YearOverYear(rows []YearRevenue, name string, currentYear int) float64 {
	var current, previous float64
	for _, row := range rows {
		if row.Name != name {
			continue
		}
		if row.Year == currentYear {
			current = row.Revenue
		} else {
			previous = row.Revenue
		}
	}
	return PercentChange(current, previous)
}

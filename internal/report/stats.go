package report

import (
	"sort"

	"github.com/anstrom/nmapreport/internal/nmapxml"
)

// ComputeStats derives summary statistics from a record table. The critical
// subset keeps only open records whose service name appears verbatim in
// criticalServices; matching never case-folds so the output stays faithful
// to the documents. topServices caps the ranking length; zero or negative
// means unlimited.
func ComputeStats(records []nmapxml.Record, criticalServices []string, topServices int) Stats {
	stats := Stats{
		TotalRecords: len(records),
		TopServices:  []ServiceCount{},
		Critical:     []nmapxml.Record{},
	}

	criticalSet := make(map[string]struct{}, len(criticalServices))
	for _, svc := range criticalServices {
		criticalSet[svc] = struct{}{}
	}

	hosts := make(map[string]struct{})
	services := make(map[string]struct{})
	openCounts := make(map[string]int)
	openOrder := make([]string, 0)

	for _, rec := range records {
		hosts[rec.IP] = struct{}{}
		services[rec.Service] = struct{}{}

		switch rec.State {
		case "open":
			stats.OpenCount++
		case "closed":
			stats.ClosedCount++
		case "filtered":
			stats.FilteredCount++
		}

		if !rec.IsOpen() {
			continue
		}
		if _, seen := openCounts[rec.Service]; !seen {
			openOrder = append(openOrder, rec.Service)
		}
		openCounts[rec.Service]++
		if _, critical := criticalSet[rec.Service]; critical {
			stats.Critical = append(stats.Critical, rec)
		}
	}

	stats.DistinctHosts = len(hosts)
	stats.DistinctServices = len(services)

	// Rank open services by frequency. The stable sort keeps
	// first-encountered order for ties.
	ranked := make([]ServiceCount, 0, len(openOrder))
	for _, svc := range openOrder {
		ranked = append(ranked, ServiceCount{Service: svc, Count: openCounts[svc]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if topServices > 0 && len(ranked) > topServices {
		ranked = ranked[:topServices]
	}
	stats.TopServices = ranked

	return stats
}

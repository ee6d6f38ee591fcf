package proxlib

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// RankByDistance joins location records with the ip -> port mapping and
// sorts them by great-circle distance to the target, closest first.
// Records whose IP is not in the mapping are dropped silently. The sort
// is stable, so equal distances keep their input order.
func RankByDistance(records []LocationRecord, ipToPort map[string]string, target Coordinates) []RankedProxy {
	if len(records) == 0 {
		log.Warn("No location data to rank.")
		return nil
	}

	ranked := make([]RankedProxy, 0, len(records))

	for _, record := range records {
		port, ok := ipToPort[record.IP]
		if !ok {
			continue
		}

		ranked = append(ranked, RankedProxy{
			Country: record.Country,
			IP:      record.IP,
			Port:    port,
			Distance: GreatCircleDistance(target, Coordinates{
				Lat: record.Lat,
				Lon: record.Lon,
			}),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	return ranked
}

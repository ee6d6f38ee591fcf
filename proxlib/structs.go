package proxlib

// Entry is a single proxy address parsed from one line of the proxy
// list feed.
type Entry struct {
	IP   string
	Port string
}

// Coordinates is a point on the Earth surface in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// LocationRecord is what the batch geolocation endpoint returns for a
// single queried IP address. The endpoint may have no data for some
// IPs, so a batch response can carry fewer records than queries.
type LocationRecord struct {
	IP          string  `json:"query"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	CountryCode string  `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// RankedProxy is a proxy joined with its geolocation and the
// great-circle distance to the target place, in kilometers.
type RankedProxy struct {
	Country  string  `json:"country"`
	IP       string  `json:"ip"`
	Port     string  `json:"port"`
	Distance float64 `json:"distance_km"`
}

// IPPortMap collapses entries into an ip -> port mapping. Duplicate IPs
// keep the last seen port.
func IPPortMap(entries []Entry) map[string]string {
	mapping := make(map[string]string, len(entries))

	for _, entry := range entries {
		mapping[entry.IP] = entry.Port
	}

	return mapping
}

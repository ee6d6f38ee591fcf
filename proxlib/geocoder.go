package proxlib

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/juju/errors"
	"github.com/pariz/gountries"
	log "github.com/sirupsen/logrus"
	"github.com/xrash/smetrics"
)

const defaultGeocoderCacheSize = 128

type geocodeResponseItem struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocoder resolves a free-text place name into coordinates. Country
// names are resolved offline from the gountries dataset (exact match
// first, Soundex as a fallback for misspellings); anything else goes to
// a Nominatim-compatible search endpoint. Successful lookups are kept
// in a small LRU cache because the ranking loop tends to ask for the
// same handful of places over and over.
type Geocoder struct {
	client HTTPClient
	url    string
	query  *gountries.Query
	cache  *lru.Cache
}

func NewGeocoder(client HTTPClient, searchURL string) *Geocoder {
	cache, err := lru.New(defaultGeocoderCacheSize)
	if err != nil {
		panic(err)
	}

	return &Geocoder{
		client: client,
		url:    searchURL,
		query:  gountries.New(),
		cache:  cache,
	}
}

// Geocode returns the coordinates of a place. ok is false if nobody
// knows such a place; this is an expected outcome, not an error. An
// error is returned only for transport-level trouble with the remote
// lookup.
func (g *Geocoder) Geocode(ctx context.Context, place string) (Coordinates, bool, error) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return Coordinates{}, false, nil
	}

	if cached, ok := g.cache.Get(key); ok {
		return cached.(Coordinates), true, nil
	}

	if coords, ok := g.countryCoordinates(key); ok {
		g.cache.Add(key, coords)
		return coords, true, nil
	}

	coords, ok, err := g.remoteLookup(ctx, key)
	if err != nil {
		return Coordinates{}, false, errors.Annotatef(err, "cannot geocode %s", place)
	}

	if ok {
		g.cache.Add(key, coords)
	}

	return coords, ok, nil
}

func (g *Geocoder) countryCoordinates(name string) (Coordinates, bool) {
	if country, err := g.query.FindCountryByName(name); err == nil {
		return centroid(country), true
	}

	if len(name) == 2 || len(name) == 3 {
		if country, err := g.query.FindCountryByAlpha(name); err == nil {
			return centroid(country), true
		}
	}

	// Soundex rescues the "franse" kind of typo. Ambiguous codes pick
	// the shortest name, same as city matching does elsewhere.
	metric := smetrics.Soundex(name)
	matched := gountries.Country{}
	found := false

	for _, country := range g.query.Countries {
		common := country.Name.Common
		if smetrics.Soundex(strings.ToLower(common)) != metric {
			continue
		}

		if !found || len(common) < len(matched.Name.Common) {
			matched = country
			found = true
		}
	}

	if !found {
		return Coordinates{}, false
	}

	log.WithFields(log.Fields{
		"requested": name,
		"matched":   matched.Name.Common,
	}).Debug("Fuzzy matched a country name.")

	return centroid(matched), true
}

func (g *Geocoder) remoteLookup(ctx context.Context, place string) (Coordinates, bool, error) {
	getQuery := url.Values{}

	getQuery.Set("q", place)
	getQuery.Set("format", "json")
	getQuery.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.url+"?"+getQuery.Encode(), nil)
	if err != nil {
		return Coordinates{}, false, errors.Annotate(err, "cannot build a request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, false, errors.Annotate(err, "cannot send a request")
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, false, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	items := []geocodeResponseItem{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&items); err != nil {
		return Coordinates{}, false, errors.Annotate(err, "cannot parse a response")
	}

	if len(items) == 0 {
		return Coordinates{}, false, nil
	}

	lat, err := strconv.ParseFloat(items[0].Lat, 64)
	if err != nil {
		return Coordinates{}, false, errors.Annotate(err, "cannot parse latitude")
	}

	lon, err := strconv.ParseFloat(items[0].Lon, 64)
	if err != nil {
		return Coordinates{}, false, errors.Annotate(err, "cannot parse longitude")
	}

	return Coordinates{Lat: lat, Lon: lon}, true, nil
}

func centroid(country gountries.Country) Coordinates {
	return Coordinates{
		Lat: country.Coordinates.Latitude,
		Lon: country.Coordinates.Longitude,
	}
}

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"proxographer/api"
	"proxographer/proxlib"
	"proxographer/sources"
)

const (
	testFeedURL     = "https://feed.example.com/socks5.txt"
	testBatchGeoURL = "http://geo.example.com/batch"
	testGeocodeURL  = "https://nominatim.example.com/search"
)

type closestResponse struct {
	Place   string                `json:"place"`
	Results []proxlib.RankedProxy `json:"results"`
}

type ServerTestSuite struct {
	suite.Suite

	router http.Handler
}

func (suite *ServerTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *ServerTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *ServerTestSuite) TearDownTest() {
	httpmock.Reset()
}

func (suite *ServerTestSuite) SetupTest() {
	httpClient := proxlib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
	store := proxlib.NewStore(afero.NewMemMapFs(), "proxies.txt")

	locator := proxlib.NewLocator(proxlib.LocatorOpts{
		Fetcher: proxlib.NewFetcher(httpClient, store),
		Store:   store,
		Source:  sources.NewPlain(),
		Resolver: proxlib.NewResolver(httpClient, testBatchGeoURL,
			proxlib.NewFixedBackoff(3, 0)),
		Geocoder:     proxlib.NewGeocoder(httpClient, testGeocodeURL),
		ProxyListURL: testFeedURL,
		SampleSize:   10,
	})

	suite.router = api.MakeServer(locator)
}

func (suite *ServerTestSuite) registerHappyResponders() {
	httpmock.RegisterResponder("GET", testFeedURL,
		httpmock.NewStringResponder(http.StatusOK, "1.2.3.4:8080\n5.6.7.8:1080\n"))
	httpmock.RegisterResponder("POST", testBatchGeoURL,
		httpmock.NewStringResponder(http.StatusOK, `[
  {"query":"1.2.3.4","country":"France","city":"Paris","countryCode":"FR","lat":48.85,"lon":2.35},
  {"query":"5.6.7.8","country":"Japan","city":"Tokyo","countryCode":"JP","lat":35.68,"lon":139.69}
]`))
}

func (suite *ServerTestSuite) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)

	suite.router.ServeHTTP(w, req)

	return w
}

func (suite *ServerTestSuite) TestClosestOk() {
	suite.registerHappyResponders()

	w := suite.get("/closest?place=France")

	suite.Equal(http.StatusOK, w.Code)

	response := closestResponse{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))

	suite.Equal("France", response.Place)
	suite.Len(response.Results, 2)
	suite.Equal("France", response.Results[0].Country)
}

func (suite *ServerTestSuite) TestClosestLimit() {
	suite.registerHappyResponders()

	w := suite.get("/closest?place=France&limit=1")

	suite.Equal(http.StatusOK, w.Code)

	response := closestResponse{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))

	suite.Len(response.Results, 1)
}

func (suite *ServerTestSuite) TestClosestNoPlace() {
	w := suite.get("/closest")

	suite.Equal(http.StatusNotAcceptable, w.Code)
}

func (suite *ServerTestSuite) TestClosestBadLimit() {
	w := suite.get("/closest?place=France&limit=minus-one")

	suite.Equal(http.StatusNotAcceptable, w.Code)
}

func (suite *ServerTestSuite) TestClosestFetchFailure() {
	httpmock.RegisterResponder("GET", testFeedURL,
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	w := suite.get("/closest?place=France")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *ServerTestSuite) TestMetrics() {
	w := suite.get("/metrics")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "proxographer_cycles_total")
}

func TestServer(t *testing.T) {
	suite.Run(t, &ServerTestSuite{})
}

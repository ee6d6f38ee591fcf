package proxlib_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"proxographer/proxlib"
)

const testGeocodeURL = "https://nominatim.example.com/search"

type GeocoderTestSuite struct {
	MockedProxlibTestSuite

	geocoder *proxlib.Geocoder
}

func (suite *GeocoderTestSuite) SetupTest() {
	suite.MockedProxlibTestSuite.SetupTest()

	suite.geocoder = proxlib.NewGeocoder(suite.http, testGeocodeURL)
}

func (suite *GeocoderTestSuite) TestCountryOffline() {
	coords, ok, err := suite.geocoder.Geocode(context.Background(), "France")

	suite.NoError(err)
	suite.True(ok)
	suite.InDelta(46.0, coords.Lat, 4.0)
	suite.InDelta(2.0, coords.Lon, 4.0)

	// no responders are registered, so a network roundtrip would fail
	suite.Equal(0, httpmock.GetTotalCallCount())
}

func (suite *GeocoderTestSuite) TestCountryAlphaCode() {
	coords, ok, err := suite.geocoder.Geocode(context.Background(), "jp")

	suite.NoError(err)
	suite.True(ok)
	suite.InDelta(36.0, coords.Lat, 5.0)
	suite.InDelta(138.0, coords.Lon, 5.0)
}

func (suite *GeocoderTestSuite) TestCountryTypo() {
	coords, ok, err := suite.geocoder.Geocode(context.Background(), "Franse")

	suite.NoError(err)
	suite.True(ok)
	suite.InDelta(46.0, coords.Lat, 4.0)
}

func (suite *GeocoderTestSuite) TestRemoteFallback() {
	httpmock.RegisterResponder("GET",
		testGeocodeURL+"?format=json&limit=1&q=montmartre",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"lat":"48.8865","lon":"2.3430"}]`))

	coords, ok, err := suite.geocoder.Geocode(context.Background(), "Montmartre")

	suite.NoError(err)
	suite.True(ok)
	suite.InDelta(48.8865, coords.Lat, 0.001)
	suite.InDelta(2.3430, coords.Lon, 0.001)
}

func (suite *GeocoderTestSuite) TestRemoteCached() {
	httpmock.RegisterResponder("GET",
		testGeocodeURL+"?format=json&limit=1&q=montmartre",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"lat":"48.8865","lon":"2.3430"}]`))

	_, ok, err := suite.geocoder.Geocode(context.Background(), "Montmartre")
	suite.NoError(err)
	suite.True(ok)

	httpmock.Reset()

	coords, ok, err := suite.geocoder.Geocode(context.Background(), "montmartre")

	suite.NoError(err)
	suite.True(ok)
	suite.InDelta(48.8865, coords.Lat, 0.001)
}

func (suite *GeocoderTestSuite) TestUnknownPlace() {
	httpmock.RegisterResponder("GET",
		testGeocodeURL+"?format=json&limit=1&q=xqzzt",
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	_, ok, err := suite.geocoder.Geocode(context.Background(), "xqzzt")

	suite.NoError(err)
	suite.False(ok)
}

func (suite *GeocoderTestSuite) TestEmptyPlace() {
	_, ok, err := suite.geocoder.Geocode(context.Background(), "   ")

	suite.NoError(err)
	suite.False(ok)
}

func (suite *GeocoderTestSuite) TestRemoteFailure() {
	httpmock.RegisterResponder("GET",
		testGeocodeURL+"?format=json&limit=1&q=xqzzt",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ""))

	_, ok, err := suite.geocoder.Geocode(context.Background(), "xqzzt")

	suite.Error(err)
	suite.False(ok)
}

func TestGeocoder(t *testing.T) {
	suite.Run(t, &GeocoderTestSuite{})
}

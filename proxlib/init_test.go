package proxlib_test

import (
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"proxographer/proxlib"
)

type ProxlibTestSuite struct {
	suite.Suite

	http proxlib.HTTPClient
	fs   afero.Fs
}

func (suite *ProxlibTestSuite) SetupTest() {
	suite.http = proxlib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
	suite.fs = afero.NewMemMapFs()
}

type MockedProxlibTestSuite struct {
	ProxlibTestSuite
}

func (suite *MockedProxlibTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProxlibTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProxlibTestSuite) TearDownTest() {
	httpmock.Reset()
}

// Package config reads the optional TOML configuration file. Every
// knob has a default, so running with no file at all is fine.
package config

import (
	"io/ioutil"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
)

const (
	DefaultFilePath     = "ip_address_file_txt"
	DefaultSampleSize   = 100
	DefaultProxyListURL = "https://raw.githubusercontent.com/TheSpeedX/SOCKS-List/master/socks5.txt"
	DefaultBatchGeoURL  = "http://ip-api.com/batch"
	DefaultGeocodeURL   = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent    = "proxographer/0.1.0"

	DefaultRetryAttempts     = 3
	DefaultRetryDelay        = time.Minute
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
)

var validFormats = map[string]bool{
	"":      true,
	"plain": true,
	"html":  true,
}

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

type Config struct {
	FilePath        string   `toml:"file_path"`
	SampleSize      uint     `toml:"sample_size"`
	ProxyListURL    string   `toml:"proxy_list_url"`
	ProxyListFormat string   `toml:"proxy_list_format"`
	BatchGeoURL     string   `toml:"batch_geo_url"`
	GeocodeURL      string   `toml:"geocode_url"`
	UserAgent       string   `toml:"user_agent"`
	RetryAttempts   uint     `toml:"retry_attempts"`
	RetryDelay      duration `toml:"retry_delay"`
	HTTPTimeout     duration `toml:"http_timeout"`
	Listen          string   `toml:"listen"`
}

func (c *Config) GetFilePath() string {
	if c.FilePath != "" {
		return c.FilePath
	}

	return DefaultFilePath
}

func (c *Config) GetSampleSize() int {
	if c.SampleSize > 0 {
		return int(c.SampleSize)
	}

	return DefaultSampleSize
}

func (c *Config) GetProxyListURL() string {
	if c.ProxyListURL != "" {
		return c.ProxyListURL
	}

	return DefaultProxyListURL
}

func (c *Config) GetProxyListFormat() string {
	return c.ProxyListFormat
}

func (c *Config) GetBatchGeoURL() string {
	if c.BatchGeoURL != "" {
		return c.BatchGeoURL
	}

	return DefaultBatchGeoURL
}

func (c *Config) GetGeocodeURL() string {
	if c.GeocodeURL != "" {
		return c.GeocodeURL
	}

	return DefaultGeocodeURL
}

func (c *Config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}

	return DefaultUserAgent
}

func (c *Config) GetRetryAttempts() int {
	if c.RetryAttempts > 0 {
		return int(c.RetryAttempts)
	}

	return DefaultRetryAttempts
}

func (c *Config) GetRetryDelay() time.Duration {
	if c.RetryDelay.Duration > 0 {
		return c.RetryDelay.Duration
	}

	return DefaultRetryDelay
}

func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration > 0 {
		return c.HTTPTimeout.Duration
	}

	return DefaultHTTPTimeout
}

func (c *Config) GetListen() string {
	return c.Listen
}

// Parse reads a config from an open file and validates it.
func Parse(file *os.File) (*Config, error) {
	conf := &Config{}

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotate(err, "cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "cannot parse config file")
	}

	if err := validate(conf); err != nil {
		return nil, errors.Annotate(err, "invalid value")
	}

	return conf, nil
}

func validate(conf *Config) error {
	if !validFormats[conf.ProxyListFormat] {
		return errors.Errorf("unknown proxy list format %s", conf.ProxyListFormat)
	}

	if conf.Listen != "" {
		if _, _, err := net.SplitHostPort(conf.Listen); err != nil {
			return errors.Annotatef(err, "incorrect host:port for listen %s", conf.Listen)
		}
	}

	return nil
}

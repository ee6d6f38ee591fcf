package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"proxographer/config"
	"proxographer/proxlib"
	"proxographer/sources"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeLocator(conf *config.Config) (*proxlib.Locator, error) {
	httpClient := proxlib.NewHTTPClient(
		&http.Client{Timeout: conf.GetHTTPTimeout()},
		conf.GetUserAgent(),
		config.DefaultRateLimitInterval,
		config.DefaultRateLimitBurst)

	source, err := sources.FromName(conf.GetProxyListFormat())
	if err != nil {
		return nil, err
	}

	store := proxlib.NewStore(afero.NewOsFs(), conf.GetFilePath())

	backoff := proxlib.NewFixedBackoff(conf.GetRetryAttempts(), conf.GetRetryDelay())

	return proxlib.NewLocator(proxlib.LocatorOpts{
		Fetcher:      proxlib.NewFetcher(httpClient, store),
		Store:        store,
		Source:       source,
		Resolver:     proxlib.NewResolver(httpClient, conf.GetBatchGeoURL(), backoff),
		Geocoder:     proxlib.NewGeocoder(httpClient, conf.GetGeocodeURL()),
		ProxyListURL: conf.GetProxyListURL(),
		SampleSize:   conf.GetSampleSize(),
	}), nil
}

package proxlib

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// Fetcher downloads a proxy list feed into a Store. A failed download
// is recoverable but gates the whole cycle: there is no point in
// sampling a stale or absent file.
type Fetcher struct {
	client HTTPClient
	store  *Store
}

func NewFetcher(client HTTPClient, store *Store) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
	}
}

// Fetch issues a single GET to the feed URL and stores the raw body.
// No retries here: the feed is a static file, if it is down now it is
// going to be down a second later too.
func (f *Fetcher) Fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Annotatef(err, "cannot build a request to %s", url)
	}

	log.WithFields(log.Fields{
		"url": url,
	}).Debug("Download proxy list.")

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Annotatef(err, "cannot access URL %s", url)
	}

	defer flushResponse(resp.Body)

	log.WithFields(log.Fields{
		"url":       url,
		"code":      resp.StatusCode,
		"body_size": resp.ContentLength,
	}).Debug("Got response.")

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("URL %s gave status code %d", url, resp.StatusCode)
	}

	if err := f.store.SaveRaw(resp.Body); err != nil {
		return errors.Annotate(err, "cannot save proxy list")
	}

	return nil
}

func flushResponse(body io.ReadCloser) {
	io.Copy(ioutil.Discard, body) // nolint: errcheck
	body.Close()
}

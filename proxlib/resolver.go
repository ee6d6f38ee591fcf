package proxlib

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// batchQueryFields is what we ask the endpoint to return for every IP.
const batchQueryFields = "query,country,city,countryCode,lat,lon"

type batchQuery struct {
	Query  string `json:"query"`
	Fields string `json:"fields"`
}

// Resolver queries a batch geolocation endpoint (ip-api.com compatible)
// for a set of IP addresses.
type Resolver struct {
	client  HTTPClient
	url     string
	backoff Backoff
}

func NewResolver(client HTTPClient, url string, backoff Backoff) *Resolver {
	return &Resolver{
		client:  client,
		url:     url,
		backoff: backoff,
	}
}

// Resolve POSTs one batch query per distinct IP and returns whatever
// records the endpoint knows about. Every failure mode (transport
// error, non-2xx, malformed body) burns one attempt and sleeps the
// backoff delay. An exhausted budget is not a fault of the process:
// the result is simply empty and the cycle goes on with no data.
func (r *Resolver) Resolve(ctx context.Context, ips []string) []LocationRecord {
	if len(ips) == 0 {
		log.Debug("No IPs to resolve.")
		return nil
	}

	payload := make([]batchQuery, 0, len(ips))
	for _, ip := range ips {
		payload = append(payload, batchQuery{Query: ip, Fields: batchQueryFields})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Cannot serialize a batch query.")

		return nil
	}

	for attempt := 1; attempt <= r.backoff.Attempts(); attempt++ {
		records, err := r.resolveOnce(ctx, body)
		if err == nil {
			log.WithFields(log.Fields{
				"queried":  len(ips),
				"resolved": len(records),
			}).Debug("Batch geolocation succeeded.")

			return records
		}

		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Batch geolocation request failed.")

		if attempt == r.backoff.Attempts() {
			break
		}

		select {
		case <-time.After(r.backoff.Delay(attempt)):
		case <-ctx.Done():
			log.Warn("Batch geolocation was cancelled while waiting for a retry.")
			return nil
		}
	}

	log.WithFields(log.Fields{
		"attempts": r.backoff.Attempts(),
	}).Error("Batch geolocation gave no data, giving up for this cycle.")

	return nil
}

func (r *Resolver) resolveOnce(ctx context.Context, body []byte) ([]LocationRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Annotatef(err, "cannot build a request to %s", r.url)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Annotate(err, "cannot send a request")
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	records := []LocationRecord{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&records); err != nil {
		return nil, errors.Annotate(err, "cannot parse a response")
	}

	return records, nil
}

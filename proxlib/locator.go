package proxlib

import (
	"context"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// State is a stage of the locator lifecycle. Stages are reachable only
// in order, each one via its corresponding operation; Reset rewinds to
// StateUninitialized from anywhere.
type State int

const (
	StateUninitialized State = iota
	StateFetched
	StateSampled
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateFetched:
		return "fetched"
	case StateSampled:
		return "sampled"
	case StateResolved:
		return "resolved"
	}

	return "unknown"
}

// Locator wires the pipeline together: fetch the feed, sample it,
// resolve locations, rank by distance. It holds the products of each
// stage explicitly instead of hiding them in ad-hoc fields, and it is
// not safe for concurrent use: one cycle at a time.
type Locator struct {
	fetcher  *Fetcher
	store    *Store
	source   Source
	resolver *Resolver
	geocoder *Geocoder

	proxyListURL string
	sampleSize   int

	state    State
	ipToPort map[string]string
	records  []LocationRecord
}

// LocatorOpts is a configuration of a Locator. A non-positive
// SampleSize gives an empty sample, same as everywhere else in this
// package.
type LocatorOpts struct {
	Fetcher      *Fetcher
	Store        *Store
	Source       Source
	Resolver     *Resolver
	Geocoder     *Geocoder
	ProxyListURL string
	SampleSize   int
}

func NewLocator(opts LocatorOpts) *Locator {
	return &Locator{
		fetcher:      opts.Fetcher,
		store:        opts.Store,
		source:       opts.Source,
		resolver:     opts.Resolver,
		geocoder:     opts.Geocoder,
		proxyListURL: opts.ProxyListURL,
		sampleSize:   opts.SampleSize,
		state:        StateUninitialized,
	}
}

// State returns the current lifecycle stage.
func (l *Locator) State() State {
	return l.state
}

// IPToPort returns the mapping built by Sample. Exposed for
// introspection, do not mutate.
func (l *Locator) IPToPort() map[string]string {
	return l.ipToPort
}

// Reset clears the products of all stages and rewinds the lifecycle.
func (l *Locator) Reset() {
	l.state = StateUninitialized
	l.ipToPort = nil
	l.records = nil
}

// Fetch downloads the proxy list into local storage. An error here
// means the whole cycle has to be skipped.
func (l *Locator) Fetch(ctx context.Context) error {
	if l.state != StateUninitialized {
		return errors.Annotatef(ErrInvalidState, "fetch in state %s", l.state)
	}

	if err := l.fetcher.Fetch(ctx, l.proxyListURL); err != nil {
		return errors.Annotate(err, "cannot retrieve proxy addresses")
	}

	l.state = StateFetched

	return nil
}

// Sample reads the stored list and draws a random subset into the
// ip -> port mapping. An unreadable or malformed file degrades to an
// empty mapping with a warning, it does not stop the cycle.
func (l *Locator) Sample() error {
	if l.state != StateFetched {
		return errors.Annotatef(ErrInvalidState, "sample in state %s", l.state)
	}

	entries, err := l.store.ReadEntries(l.source)
	if err != nil {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Cannot read the proxy list, continuing with no entries.")

		entries = nil
	}

	l.ipToPort = IPPortMap(SampleEntries(entries, l.sampleSize))
	l.state = StateSampled

	log.WithFields(log.Fields{
		"available": len(entries),
		"sampled":   len(l.ipToPort),
	}).Debug("Sampled proxy entries.")

	return nil
}

// Resolve queries the batch geolocation endpoint for the sampled IPs.
// An exhausted retry budget leaves an empty record set behind, which
// later stages treat as "no data".
func (l *Locator) Resolve(ctx context.Context) error {
	if l.state != StateSampled {
		return errors.Annotatef(ErrInvalidState, "resolve in state %s", l.state)
	}

	ips := make([]string, 0, len(l.ipToPort))
	for ip := range l.ipToPort {
		ips = append(ips, ip)
	}

	l.records = l.resolver.Resolve(ctx, ips)
	l.state = StateResolved

	return nil
}

// Closest geocodes a place and ranks the resolved proxies by distance
// to it. Calling it before Resolve is a precondition violation. An
// unresolvable place is not: that degrades to an empty result with a
// warning.
func (l *Locator) Closest(ctx context.Context, place string) ([]RankedProxy, error) {
	if l.state != StateResolved {
		return nil, errors.Annotatef(ErrInvalidState, "rank in state %s", l.state)
	}

	target, ok, err := l.geocoder.Geocode(ctx, place)
	if err != nil {
		log.WithFields(log.Fields{
			"place": place,
			"error": err.Error(),
		}).Warn("Geocode lookup failed.")

		return nil, nil
	}

	if !ok {
		log.WithFields(log.Fields{
			"place": place,
		}).Warn("Nobody knows such a place.")

		return nil, nil
	}

	return RankByDistance(l.records, l.ipToPort, target), nil
}

// Cycle runs fetch -> sample -> resolve from a clean slate. If the
// fetch fails, the rest is skipped entirely with a single diagnostic.
func (l *Locator) Cycle(ctx context.Context) error {
	l.Reset()

	if err := l.Fetch(ctx); err != nil {
		log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to download IP addresses, skipping this cycle.")

		return err
	}

	if err := l.Sample(); err != nil {
		return err
	}

	return l.Resolve(ctx)
}

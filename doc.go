// Proxographer finds free proxies which are geographically close to a
// place you name.
//
// The idea is simple: public feeds publish long lists of ip:port
// proxies with no hint about where they are. Proxographer downloads
// such a feed, samples a subset, asks a batch geolocation service for
// their coordinates and sorts them by great-circle distance to your
// target, closest first.
//
// Tool itself is organized into 3 logical parts:
//
// Proxlib
//
// proxlib is a main package of the application. It contains the
// pipeline stages (fetcher, sampler, resolver, ranker) and the Locator
// which threads them together with an explicit lifecycle.
//
// Sources
//
// This package has parsers for the formats proxy feeds come in: plain
// ip:port text and HTML tables.
//
// Api
//
// An optional HTTP surface. The same binary can serve the ranking as
// GET /closest and export Prometheus metrics instead of printing to
// stdout.
package main

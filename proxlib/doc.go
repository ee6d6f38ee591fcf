// Package proxlib contains the main logic of proxographer: a pipeline
// which downloads a proxy list feed, samples it, resolves the sampled
// IPs to coordinates with a batch geolocation endpoint and ranks them
// by great-circle distance to a target place.
//
// The pipeline is deliberately sequential and blocking. Each stage
// produces an explicit result which the Locator threads into the next
// stage, and every failure short of a programming error degrades into
// an empty result instead of taking the process down.
package proxlib

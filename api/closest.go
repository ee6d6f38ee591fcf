package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func closestProxies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locked := ctx.Value("locator").(*lockedLocator)

	place := r.URL.Query().Get("place")
	if place == "" {
		abort(w, http.StatusNotAcceptable, "please provide a place to rank against")
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			abort(w, http.StatusNotAcceptable, "limit must be a non-negative integer")
			return
		}

		limit = parsed
	}

	locked.Lock()
	defer locked.Unlock()

	cyclesTotal.Inc()

	if err := locked.locator.Cycle(ctx); err != nil {
		cycleFailures.Inc()
		abort(w, http.StatusBadGateway, "cannot refresh the proxy list")

		return
	}

	ranked, err := locked.locator.Closest(ctx, place)
	if err != nil {
		abort(w, http.StatusInternalServerError, err.Error())
		return
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rankedProxies.Set(float64(len(ranked)))

	response := closestResponseStruct{Place: place}
	response.Build(ranked)

	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

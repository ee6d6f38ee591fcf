package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"proxographer/proxlib"
)

// One cycle can legitimately spend minutes sleeping between geolocation
// retries, so the request timeout has to be generous.
const requestTimeout = 5 * time.Minute

// lockedLocator serializes cycles: the locator itself assumes one
// in-flight cycle at a time, concurrent requests have to queue.
type lockedLocator struct {
	sync.Mutex

	locator *proxlib.Locator
}

func MakeServer(loc *proxlib.Locator) *chi.Mux {
	router := chi.NewRouter()
	locked := &lockedLocator{locator: loc}

	ctxLocator := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), "locator", locked)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)

	router.Group(func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))
		r.Use(ctxLocator)
		r.Get("/closest", closestProxies)
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}

func abort(w http.ResponseWriter, code int, message string) {
	msg, _ := json.Marshal(map[string]string{"error": message})
	http.Error(w, string(msg), code)
}

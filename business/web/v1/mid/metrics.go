package mid

import (
	"context"
	"expvar"
	"net/http"
	"runtime"

	"github.com/actionchain/actionchain/foundation/web"
)

// counters holds the expvar counters for the service. They are published to
// the debug endpoint and updated by the Metrics middleware.
type counters struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
}

// AddPanics increments the panics counter.
func (c *counters) AddPanics() {
	c.panics.Add(1)
}

var metrics = counters{
	goroutines: expvar.NewInt("goroutines"),
	requests:   expvar.NewInt("requests"),
	errors:     expvar.NewInt("errors"),
	panics:     expvar.NewInt("panics"),
}

// Metrics updates program counters.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)

			// Increment the request counter.
			metrics.requests.Add(1)

			// Update the count for the number of active goroutines every
			// 100 requests.
			if metrics.requests.Value()%100 == 0 {
				metrics.goroutines.Set(int64(runtime.NumGoroutine()))
			}

			// Increment the errors counter if an error occurred.
			if err != nil {
				metrics.errors.Add(1)
			}

			// Return the error so it can be handled further up the chain.
			return err
		}

		return h
	}

	return m
}

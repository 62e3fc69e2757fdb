package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
)

// statusRecorder keeps the status and, for failed requests, the body of a
// response while passing it through.
type statusRecorder struct {
	http.ResponseWriter
	code int
	body bytes.Buffer
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.code == 0 {
		sr.code = http.StatusOK
	}

	if sr.code >= http.StatusBadRequest {
		sr.body.Write(b)
	}

	return sr.ResponseWriter.Write(b) //nolint:wrapcheck
}

func loggingMiddleware(logg logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rr := &statusRecorder{ResponseWriter: w} //nolint:exhaustruct

			defer func() {
				code := rr.code
				if code == 0 {
					code = http.StatusOK
				}

				logg.Infof("METHOD %s %s URI %s STATUS %d Latency %s Client IP %s User Agent %s",
					r.Method,
					r.Proto,
					r.URL.RequestURI(),
					code,
					time.Since(start).String(),
					r.RemoteAddr,
					r.UserAgent(),
				)

				if code >= http.StatusBadRequest && rr.body.Len() != 0 {
					logg.Errorf("error: %s", rr.body.String())
				}
			}()

			next.ServeHTTP(rr, r)
		})
	}
}

package middleware

import (
	"net/http"
	"strconv"

	"github.com/avasant/docuchat/internal/metrics"
	"github.com/avasant/docuchat/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Wrap runs the public pipeline: trace injection and rate limiting, plus
// request metrics around the handler.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return wrapPipeline(next, false)
}

// WrapAuth additionally requires a valid bearer token and injects the user
// id into the request context.
func WrapAuth(next http.HandlerFunc) http.HandlerFunc {
	return wrapPipeline(next, true)
}

func wrapPipeline(next http.HandlerFunc, requireAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec}, requireAuth)

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct, requireAuth bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		return re
	}
	if requireAuth {
		re = authenticate(re)
	}
	return re
}

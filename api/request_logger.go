// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// requestLoggerHandler logs every request with its body, duration and
// outcome status.
func requestLoggerHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(r.Body, 4*1024))
			r.Body = io.NopCloser(io.MultiReader(
				bytes.NewReader(body),
				r.Body,
			))
		}

		mrw := newMetricsResponseWriter(w)
		h.ServeHTTP(mrw, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"code", mrw.statusCode,
			"duration", time.Since(now),
			"bodyBytes", len(body),
		)
	})
}

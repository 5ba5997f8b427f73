package httpapi

import "time"

// maxUploadBytes controls the maximum allowed request body size for document
// uploads. Default is 50 MiB, plenty for scholarly PDFs.
var maxUploadBytes int64 = 50 << 20

// SetMaxUploadBytes allows configuring the maximum upload size.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = 50 << 20
		return
	}
	maxUploadBytes = n
}

// keepAliveInterval is the cadence of SSE ping frames. Overridable in tests.
var keepAliveInterval = 30 * time.Second

// SetKeepAliveInterval sets the SSE ping cadence (values <= 0 restore the
// default).
func SetKeepAliveInterval(d time.Duration) {
	if d <= 0 {
		keepAliveInterval = 30 * time.Second
		return
	}
	keepAliveInterval = d
}

// defaultReplayLimit is how many history events a new stream subscriber
// receives when the replay query parameter is absent.
const defaultReplayLimit = 50

// defaultHistoryLimit bounds /events/history responses without an explicit
// limit parameter.
const defaultHistoryLimit = 50

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

package httpapi

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"extractd/internal/engine"
	"extractd/internal/events"
)

// formMemoryLimit caps how much of a multipart body is held in memory while
// parsing; the rest spills to temp files. Total size is enforced separately
// by maxUploadBytes.
const formMemoryLimit = 10 << 20

// formField is one whitelisted engine form parameter with its default. Only
// whitelisted fields are forwarded; everything else in the client form is
// dropped.
type formField struct {
	name string
	def  string
}

var fulltextFields = []formField{
	{"consolidateHeader", "1"},
	{"consolidateCitations", "0"},
	{"includeRawCitations", "0"},
	{"includeRawAffiliations", "0"},
	{"teiCoordinates", ""},
	{"segmentSentences", "0"},
}

var headerFields = []formField{
	{"consolidateHeader", "1"},
}

var referencesFields = []formField{
	{"consolidateCitations", "0"},
}

type proxyHandlers struct {
	svc Service
	bus *events.Broadcaster
	eng *engine.Client
}

// document returns a handler that forwards an uploaded document to the given
// engine operation, publishing lifecycle events around the round trip.
func (p *proxyHandlers) document(op string, fields []formField) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !p.svc.Ready() {
			writeJSONError(w, http.StatusServiceUnavailable, "engine not ready")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(formMemoryLimit); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}
		file, hdr, err := r.FormFile("input")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "missing input file")
			return
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "reading input file: "+err.Error())
			return
		}
		filename := hdr.Filename
		if filename == "" {
			filename = "document"
		}

		form := url.Values{}
		for _, f := range fields {
			v := r.FormValue(f.name)
			if v == "" {
				v = f.def
			}
			form.Set(f.name, v)
		}

		lvl := requestLogLevel(r)
		sizeKB := len(content) / 1024
		p.bus.EmitExtractionStart(filename, op, sizeKB)
		p.svc.Report(engine.ActivityWorking, "processing "+filename)
		if lvl >= LevelInfo {
			logInfo("extraction_start", map[string]any{
				"endpoint": op, "filename": filename, "file_size_kb": sizeKB,
			})
		}

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		start := time.Now()
		res, err := p.eng.ProcessDocument(ctx, op, filename, content, form)
		elapsed := time.Since(start)
		latencyMS := float64(elapsed) / float64(time.Millisecond)
		if err != nil {
			// Transport-level failure: the engine never answered.
			p.bus.EmitExtractionFailure(filename, op, err.Error(), latencyMS)
			p.svc.Report(engine.ActivityError, "extraction failed: "+filename)
			observeExtraction(op, "failure", elapsed.Seconds())
			if lvl >= LevelError {
				logError("extraction_failure", map[string]any{
					"endpoint": op, "filename": filename, "error": err,
				})
			}
			writeJSONError(w, http.StatusInternalServerError, "engine request failed: "+err.Error())
			return
		}

		// The engine answered; its verdict passes through verbatim, status
		// code included. An engine-side 4xx/5xx is still a completed request.
		p.bus.EmitExtractionSuccess(filename, op, latencyMS, len(res.Body)/1024, res.StatusCode)
		p.svc.Report(engine.ActivityIdle, "")
		observeExtraction(op, "success", elapsed.Seconds())
		if lvl >= LevelInfo {
			logInfo("extraction_done", map[string]any{
				"endpoint": op, "filename": filename, "status": res.StatusCode, "latency_ms": latencyMS,
			})
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(res.StatusCode)
		_, _ = w.Write(res.Body)
	}
}

// citation parses raw citation strings posted as a form field. Unlike the
// document endpoints this publishes no events; it is high-volume and cheap.
func (p *proxyHandlers) citation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !p.svc.Ready() {
			writeJSONError(w, http.StatusServiceUnavailable, "engine not ready")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		var err error
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			err = r.ParseMultipartForm(formMemoryLimit)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid form: "+err.Error())
			return
		}
		citations := r.FormValue("citations")
		if citations == "" {
			writeJSONError(w, http.StatusBadRequest, "missing citations field")
			return
		}
		form := url.Values{}
		form.Set("citations", citations)
		consolidate := r.FormValue("consolidateCitations")
		if consolidate == "" {
			consolidate = "0"
		}
		form.Set("consolidateCitations", consolidate)

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res, err := p.eng.ProcessForm(ctx, "processCitation", form)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "engine request failed: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(res.StatusCode)
		_, _ = w.Write(res.Body)
	}
}

// passthrough forwards small informational GETs (isalive, version) without
// readiness gating so callers can watch the engine come up.
func (p *proxyHandlers) passthrough(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := p.eng.Get(r.Context(), path)
		if err != nil {
			writeJSONError(w, http.StatusBadGateway, "engine unreachable: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(res.StatusCode)
		_, _ = w.Write(res.Body)
	}
}

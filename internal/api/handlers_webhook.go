package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dgallion1/prelabel/internal/metrics"
	"github.com/dgallion1/prelabel/internal/tagtog"
)

// webhookPayload is the trigger body tagtog sends on document events.
type webhookPayload struct {
	TagtogID string `json:"tagtogID"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues("bad_request").Inc()
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.WebhooksTotal.WithLabelValues("bad_request").Inc()
		jsonError(w, "invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	// A trigger without a document id is a no-op, not an error.
	if payload.TagtogID == "" {
		metrics.WebhooksTotal.WithLabelValues("no_docid").Inc()
		w.WriteHeader(http.StatusOK)
		return
	}

	s.log.Info("webhook trigger", "doc_id", payload.TagtogID)

	if err := s.pipeline.Process(r.Context(), payload.TagtogID); err != nil {
		var apiErr *tagtog.APIError
		if errors.As(err, &apiErr) && apiErr.Op == "import" {
			// The document was fetched and annotated; only the upload of
			// the suggestions failed. Report success to the webhook caller
			// so tagtog does not redeliver and duplicate pre-annotations;
			// the failure is logged and counted instead.
			s.log.Error("import failed", "doc_id", payload.TagtogID, "error", err)
			metrics.WebhooksTotal.WithLabelValues("import_error").Inc()
			w.WriteHeader(http.StatusOK)
			return
		}

		s.log.Error("pipeline failed", "doc_id", payload.TagtogID, "error", err)
		metrics.WebhooksTotal.WithLabelValues("error").Inc()
		jsonError(w, "pre-annotation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	metrics.WebhooksTotal.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusOK)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

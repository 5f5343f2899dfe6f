package httpapi

import (
	"net/http"
)

// RunIngestion runs one ingestion cycle synchronously. A cycle that stopped
// early still answers 200 with the partial result; the caller reads
// stopped_early and error.
func (h *Handler) RunIngestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestion")
	defer span.End()

	result, err := h.ingestionService.RunCycle(ctx)
	if err != nil && !result.StoppedEarly {
		h.logger.WarnContext(ctx, "ingestion cycle failed", "run_id", result.RunID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "ingestion cycle stopped early", "run_id", result.RunID, "error", err)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

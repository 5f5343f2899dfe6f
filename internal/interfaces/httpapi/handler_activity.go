package httpapi

import (
	"net/http"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.rankingService.Categories())
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListActivities")
	defer span.End()

	filter, err := h.activityFilter(ctx, r, 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.registerService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list activities failed", "club_id", filter.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}

func (h *Handler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDateRange")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bounds, err := h.registerService.DateBounds(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get date range failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dateRangeDTO{
		Min:         bounds.Min.Format(dateLayout),
		Max:         bounds.Max.Format(dateLayout),
		DefaultFrom: bounds.DefaultFrom.Format(dateLayout),
		DefaultTo:   bounds.DefaultTo.Format(dateLayout),
	})
}

type dateRangeDTO struct {
	Min         string `json:"min"`
	Max         string `json:"max"`
	DefaultFrom string `json:"default_from"`
	DefaultTo   string `json:"default_to"`
}

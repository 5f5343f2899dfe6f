package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-activity/internal/domain/ranking"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

func (h *Handler) GetClubStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubStats")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := h.activityFilter(ctx, r, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.rankingService.ClubStats(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "get club stats failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, totals)
}

func (h *Handler) GetClubSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubSummary")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := h.activityFilter(ctx, r, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.rankingService.Summary(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "get club summary failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ListClubAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubAthletes")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := h.activityFilter(ctx, r, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query, err := h.rankingQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.rankingService.AthleteStats(ctx, filter, query.Category, query.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list club athletes failed", "club_id", clubID, "category", query.Category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetHallOfFame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHallOfFame")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := h.activityFilter(ctx, r, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	hall, err := h.rankingService.HallOfFame(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "get hall of fame failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, hall)
}

func (h *Handler) GetPalmares(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPalmares")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := h.activityFilter(ctx, r, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query, err := h.rankingQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if query.Metric == "" {
		query.Metric = string(ranking.MetricDistance)
	}

	entries, err := h.rankingService.Palmares(ctx, usecase.PalmaresQuery{
		Filter:   filter,
		Category: query.Category,
		Metric:   query.Metric,
		Limit:    query.Limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get palmares failed", "club_id", clubID, "metric", query.Metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

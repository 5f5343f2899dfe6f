package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/club-activity/internal/domain/fetchlog"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.clubService.ListClubs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubs)
}

func (h *Handler) ListClubMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubMembers")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	members, err := h.clubService.ListMembers(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list club members failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, members)
}

func (h *Handler) GetAthleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAthleteProfile")
	defer span.End()

	profile, err := h.clubService.AthleteProfile(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get athlete profile failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

type fetchLogDTO struct {
	ClubID        int64     `json:"club_id"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
	NeverFetched  bool      `json:"never_fetched"`
	NextFetchAt   time.Time `json:"next_fetch_at"`
	Due           bool      `json:"due"`
}

func (h *Handler) GetFetchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFetchLog")
	defer span.End()

	clubID, err := pathClubID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	due, last := h.throttleService.ShouldFetch(ctx, clubID, h.now().UTC())
	writeSuccess(ctx, w, http.StatusOK, h.fetchLogToDTO(fetchlog.Entry{ClubID: clubID, LastFetchedAt: last}, due))
}

func (h *Handler) ListFetchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFetchLog")
	defer span.End()

	entries, err := h.throttleService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list fetch log failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	now := h.now().UTC()
	items := make([]fetchLogDTO, 0, len(entries))
	for _, entry := range entries {
		due, _ := h.throttleService.ShouldFetch(ctx, entry.ClubID, now)
		items = append(items, h.fetchLogToDTO(entry, due))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) fetchLogToDTO(entry fetchlog.Entry, due bool) fetchLogDTO {
	return fetchLogDTO{
		ClubID:        entry.ClubID,
		LastFetchedAt: entry.LastFetchedAt,
		NeverFetched:  entry.LastFetchedAt.Equal(fetchlog.NeverFetched),
		NextFetchAt:   entry.LastFetchedAt.Add(h.throttleService.Cooldown()),
		Due:           due,
	}
}

type lastClubDTO struct {
	ClubName string `json:"club_name"`
}

func (h *Handler) GetLastClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLastClub")
	defer span.End()

	name, err := h.preferenceService.LastSelectedClub(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get last selected club failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lastClubDTO{ClubName: name})
}

func (h *Handler) SaveLastClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLastClub")
	defer span.End()

	var req saveLastClubRequest
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, 1<<16))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(ctx, w, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.preferenceService.SaveLastSelectedClub(ctx, req.ClubName); err != nil {
		h.logger.WarnContext(ctx, "save last selected club failed", "club_name", req.ClubName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lastClubDTO{ClubName: req.ClubName})
}

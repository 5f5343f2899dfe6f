package httpapi

import (
	"net/http"

	"github.com/riskibarqy/club-activity/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/activities", handler.ListActivities)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}/members", handler.ListClubMembers)
	mux.HandleFunc("GET /v1/clubs/{clubID}/stats", handler.GetClubStats)
	mux.HandleFunc("GET /v1/clubs/{clubID}/summary", handler.GetClubSummary)
	mux.HandleFunc("GET /v1/clubs/{clubID}/athletes", handler.ListClubAthletes)
	mux.HandleFunc("GET /v1/clubs/{clubID}/hall-of-fame", handler.GetHallOfFame)
	mux.HandleFunc("GET /v1/clubs/{clubID}/palmares", handler.GetPalmares)
	mux.HandleFunc("GET /v1/clubs/{clubID}/date-range", handler.GetDateRange)
	mux.HandleFunc("GET /v1/athlete/profile", handler.GetAthleteProfile)
	mux.HandleFunc("GET /v1/fetch-log", handler.ListFetchLog)
	mux.HandleFunc("GET /v1/fetch-log/{clubID}", handler.GetFetchLog)
	mux.HandleFunc("GET /v1/preferences/last-club", handler.GetLastClub)
	mux.HandleFunc("PUT /v1/preferences/last-club", handler.SaveLastClub)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/run", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestion)))
}

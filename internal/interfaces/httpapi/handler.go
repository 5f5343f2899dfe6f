package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	registerService   *usecase.RegisterService
	rankingService    *usecase.RankingService
	throttleService   *usecase.FetchThrottleService
	preferenceService *usecase.PreferenceService
	clubService       *usecase.ClubService
	ingestionService  *usecase.IngestionService
	logger            *logging.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	registerService *usecase.RegisterService,
	rankingService *usecase.RankingService,
	throttleService *usecase.FetchThrottleService,
	preferenceService *usecase.PreferenceService,
	clubService *usecase.ClubService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		registerService:   registerService,
		rankingService:    rankingService,
		throttleService:   throttleService,
		preferenceService: preferenceService,
		clubService:       clubService,
		ingestionService:  ingestionService,
		logger:            logger,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type activityQuery struct {
	ClubID     int64    `validate:"gte=0"`
	ClubName   string   `validate:"omitempty,max=200"`
	SportTypes []string `validate:"omitempty,dive,required,max=50"`
	From       string   `validate:"omitempty,datetime=2006-01-02"`
	To         string   `validate:"omitempty,datetime=2006-01-02"`
}

type rankingQuery struct {
	Category string `validate:"omitempty,max=50"`
	Metric   string `validate:"omitempty,max=50"`
	Limit    int    `validate:"gte=0,lte=500"`
}

type saveLastClubRequest struct {
	ClubName string `json:"club_name" validate:"required,max=200"`
}

// activityFilter reads the register filter from the query string. pathClubID,
// when set, wins over the club_id query parameter.
func (h *Handler) activityFilter(ctx context.Context, r *http.Request, pathClubID int64) (activity.Filter, error) {
	values := r.URL.Query()
	query := activityQuery{
		ClubName:   strings.TrimSpace(values.Get("club_name")),
		SportTypes: splitQueryList(values["sport_type"]),
		From:       strings.TrimSpace(values.Get("from")),
		To:         strings.TrimSpace(values.Get("to")),
	}
	if raw := strings.TrimSpace(values.Get("club_id")); raw != "" {
		clubID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return activity.Filter{}, fmt.Errorf("%w: club_id must be an integer", usecase.ErrInvalidInput)
		}
		query.ClubID = clubID
	}
	if pathClubID > 0 {
		query.ClubID = pathClubID
	}
	if err := h.validateRequest(ctx, query); err != nil {
		return activity.Filter{}, err
	}

	filter := activity.Filter{
		ClubID:     query.ClubID,
		ClubName:   query.ClubName,
		SportTypes: query.SportTypes,
	}
	if query.From != "" {
		filter.From, _ = time.Parse(dateLayout, query.From)
	}
	if query.To != "" {
		filter.To, _ = time.Parse(dateLayout, query.To)
	}
	return filter, nil
}

func (h *Handler) rankingQuery(ctx context.Context, r *http.Request) (rankingQuery, error) {
	values := r.URL.Query()
	query := rankingQuery{
		Category: strings.TrimSpace(values.Get("category")),
		Metric:   strings.TrimSpace(values.Get("metric")),
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return rankingQuery{}, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
		query.Limit = limit
	}
	if err := h.validateRequest(ctx, query); err != nil {
		return rankingQuery{}, err
	}
	return query, nil
}

func pathClubID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("clubID"))
	clubID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || clubID <= 0 {
		return 0, fmt.Errorf("%w: club id must be a positive integer", usecase.ErrInvalidInput)
	}
	return clubID, nil
}

// splitQueryList accepts both repeated parameters and comma separated values.
func splitQueryList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

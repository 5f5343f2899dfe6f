package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
	basecache "github.com/riskibarqy/club-activity/internal/platform/cache"
)

// ActivityProvider memoizes provider responses per endpoint, parameters and
// TTL bucket. Concurrent identical calls share one upstream request.
type ActivityProvider struct {
	next  club.Provider
	cache *basecache.Store
	now   func() time.Time
}

func NewActivityProvider(next club.Provider, cache *basecache.Store) *ActivityProvider {
	return &ActivityProvider{next: next, cache: cache, now: time.Now}
}

var _ club.Provider = (*ActivityProvider)(nil)

func (p *ActivityProvider) key(endpoint string, params ...string) string {
	return basecache.BucketKey(endpoint, params, p.cache.TTL(), p.now())
}

func (p *ActivityProvider) GetAthlete(ctx context.Context) (club.Athlete, error) {
	v, err := p.cache.GetOrLoad(ctx, p.key("athlete"), func(ctx context.Context) (any, error) {
		return p.next.GetAthlete(ctx)
	})
	if err != nil {
		return club.Athlete{}, err
	}

	item, _ := v.(club.Athlete)
	return item, nil
}

func (p *ActivityProvider) GetAthleteStats(ctx context.Context, athleteID int64) (club.AthleteStats, error) {
	key := p.key("athlete_stats", strconv.FormatInt(athleteID, 10))
	v, err := p.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return p.next.GetAthleteStats(ctx, athleteID)
	})
	if err != nil {
		return club.AthleteStats{}, err
	}

	item, _ := v.(club.AthleteStats)
	return item, nil
}

func (p *ActivityProvider) ListAthleteClubs(ctx context.Context) ([]club.Club, error) {
	v, err := p.cache.GetOrLoad(ctx, p.key("athlete_clubs"), func(ctx context.Context) (any, error) {
		items, err := p.next.ListAthleteClubs(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (p *ActivityProvider) ListClubMembers(ctx context.Context, clubID int64) ([]club.Member, error) {
	key := p.key("club_members", strconv.FormatInt(clubID, 10))
	v, err := p.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := p.next.ListClubMembers(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return append([]club.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Member)
	return append([]club.Member(nil), items...), nil
}

func (p *ActivityProvider) ListClubActivities(ctx context.Context, clubID int64, page, perPage int) ([]activity.RawActivity, error) {
	key := p.key("club_activities", strconv.FormatInt(clubID, 10), strconv.Itoa(page), strconv.Itoa(perPage))
	v, err := p.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := p.next.ListClubActivities(ctx, clubID, page, perPage)
		if err != nil {
			return nil, err
		}
		return append([]activity.RawActivity(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]activity.RawActivity)
	return append([]activity.RawActivity(nil), items...), nil
}

const registerKey = "register:all"

// ActivityRegister keeps the current register in memory. Replace writes the
// new records through, and a load that started before a Replace never
// stores its result.
type ActivityRegister struct {
	next  activity.Register
	cache *basecache.Store

	mu         sync.Mutex
	generation uint64
}

func NewActivityRegister(next activity.Register, cache *basecache.Store) *ActivityRegister {
	return &ActivityRegister{next: next, cache: cache}
}

func (r *ActivityRegister) Load(ctx context.Context) ([]activity.Record, error) {
	if v, ok := r.cache.Get(ctx, registerKey); ok {
		items, _ := v.([]activity.Record)
		return append([]activity.Record(nil), items...), nil
	}

	r.mu.Lock()
	gen := r.generation
	r.mu.Unlock()

	items, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.generation == gen {
		r.cache.Set(ctx, registerKey, append([]activity.Record(nil), items...))
	}
	r.mu.Unlock()

	return append([]activity.Record(nil), items...), nil
}

func (r *ActivityRegister) Replace(ctx context.Context, records []activity.Record) error {
	err := r.next.Replace(ctx, records)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	if err != nil {
		// Storage state is unknown after a failed write.
		r.cache.Delete(ctx, registerKey)
		return err
	}
	r.cache.Set(ctx, registerKey, append([]activity.Record(nil), records...))
	return nil
}

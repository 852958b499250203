package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Location is a named point on the map
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// StatusCard is a board entry with its display colour
type StatusCard struct {
	Status
	Color string `json:"color"`
}

// CityWeather pairs a city with its temperature; Temperature is nil when unavailable
type CityWeather struct {
	City        string   `json:"city"`
	Temperature *float64 `json:"temperature"`
}

// Summary is everything the dashboard renders in one payload
type Summary struct {
	Statuses      map[string]StatusCard `json:"statuses"`
	DistanceKm    int                   `json:"distance_km"`
	DaysUntilMeet int                   `json:"days_until_meet"`
	NextMeetDate  string                `json:"next_meet_date"`
	Weather       []CityWeather         `json:"weather"`
}

// WeatherSource is satisfied by WeatherClient
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (CurrentWeather, error)
}

// Summarizer assembles the dashboard summary
type Summarizer struct {
	store    Store
	weather  WeatherSource
	home     Location
	partner  Location
	nextMeet time.Time
	now      func() time.Time
}

// NewSummarizer creates a summarizer for the two locations
func NewSummarizer(store Store, weather WeatherSource, home, partner Location, nextMeet time.Time) *Summarizer {
	return &Summarizer{
		store:    store,
		weather:  weather,
		home:     home,
		partner:  partner,
		nextMeet: nextMeet,
		now:      time.Now,
	}
}

// Summary loads the board and both weathers concurrently.
// Weather failures leave the temperature empty; a store failure is returned.
func (s *Summarizer) Summary(ctx context.Context) (*Summary, error) {
	var (
		board Board
		mu    sync.Mutex
	)
	weather := []CityWeather{{City: s.home.City}, {City: s.partner.City}}
	locations := []Location{s.home, s.partner}

	g, grpCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.store.Load(grpCtx)
		if err != nil {
			return err
		}
		mu.Lock()
		board = b
		mu.Unlock()
		return nil
	})
	for i, loc := range locations {
		g.Go(func() error {
			current, err := s.weather.Current(grpCtx, loc.Lat, loc.Lon)
			if err != nil {
				logger.Warn("Weather lookup failed", logger.Fields{"city": loc.City, "error": err.Error()})
				return nil
			}
			temperature := current.Temperature
			mu.Lock()
			weather[i].Temperature = &temperature
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make(map[string]StatusCard, len(board))
	for user, status := range board {
		cards[user] = StatusCard{Status: status, Color: RatingColor(status.Rating)}
	}

	return &Summary{
		Statuses:      cards,
		DistanceKm:    Distance(s.home.Lat, s.home.Lon, s.partner.Lat, s.partner.Lon),
		DaysUntilMeet: DaysUntil(s.now(), s.nextMeet),
		NextMeetDate:  s.nextMeet.Format("2006-01-02"),
		Weather:       weather,
	}, nil
}

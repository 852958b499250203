package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	weatherTimeout   = 5 * time.Second
	weatherCacheSize = 64
	weatherCacheTTL  = 10 * time.Minute
)

// CurrentWeather is open-meteo's current_weather object
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
	Time          string  `json:"time"`
}

type forecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// WeatherClient fetches current conditions from open-meteo.
// Results are cached per coordinate pair and concurrent lookups are collapsed.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *expirable.LRU[string, CurrentWeather]
	group      singleflight.Group
}

// NewWeatherClient creates a client for baseURL, e.g. https://api.open-meteo.com
func NewWeatherClient(baseURL string) *WeatherClient {
	return &WeatherClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: weatherTimeout},
		cache:      expirable.NewLRU[string, CurrentWeather](weatherCacheSize, nil, weatherCacheTTL),
	}
}

// Current returns the current weather at lat/lon
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if weather, ok := c.cache.Get(key); ok {
		return weather, nil
	}

	// The shared fetch outlives any single caller's cancellation; httpClient's
	// timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		weather, err := c.fetch(fetchCtx, lat, lon)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, weather)
		return weather, nil
	})
	if err != nil {
		return CurrentWeather{}, err
	}
	return v.(CurrentWeather), nil
}

func (c *WeatherClient) fetch(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+query.Encode(), nil)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CurrentWeather{}, fmt.Errorf("weather service returned %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return CurrentWeather{}, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if body.CurrentWeather == nil {
		return CurrentWeather{}, errors.New("weather response has no current_weather")
	}
	return *body.CurrentWeather, nil
}

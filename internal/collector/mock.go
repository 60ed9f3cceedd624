package collector

import (
	"context"
	"sync"
	"time"

	"TradeBuddy/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// When no explicit points are set it generates a gently rising series around Price.
type MockFetcher struct {
	Price        float64
	IntradayData []model.PricePoint
	DailyData    []model.PricePoint
	IntradayErr  error
	DailyErr     error
	Now          func() time.Time

	mu            sync.Mutex
	intradayCalls int
	dailyCalls    int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntraday(_ context.Context, _ string) ([]model.PricePoint, error) {
	m.mu.Lock()
	m.intradayCalls++
	m.mu.Unlock()
	if m.IntradayErr != nil {
		return nil, m.IntradayErr
	}
	if m.IntradayData != nil {
		return m.IntradayData, nil
	}
	return generateMockPoints(m.Price, 12, 5*time.Minute, m.now()), nil
}

func (m *MockFetcher) FetchDaily(_ context.Context, _ string, window model.Window) ([]model.PricePoint, error) {
	m.mu.Lock()
	m.dailyCalls++
	m.mu.Unlock()
	if m.DailyErr != nil {
		return nil, m.DailyErr
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockPoints(m.Price, windowDays(window)*5/7, 24*time.Hour, m.now()), nil
}

// Calls reports how many intraday and daily fetches reached the mock.
func (m *MockFetcher) Calls() (intraday, daily int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intradayCalls, m.dailyCalls
}

func (m *MockFetcher) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func generateMockPoints(basePrice float64, count int, step time.Duration, end time.Time) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  end.Add(-time.Duration(count-1-i) * step),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

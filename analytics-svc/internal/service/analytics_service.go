package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"foodcourt-ordering/analytics-svc/internal/domain"
)

const (
	dashboardCacheTTL = 60 * time.Second
	trendDays         = 7
	mostSoldLimit     = 5
)

// Business days roll over at the food court's local midnight.
var reportingZone = time.FixedZone("IST", 5*3600+30*60)

type AnalyticsService struct {
	store AnalyticsStore
	cache DashboardCache

	// Now is the clock used for report windows, swappable in tests.
	Now func() time.Time
}

func NewAnalyticsService(store AnalyticsStore, cache DashboardCache) *AnalyticsService {
	return &AnalyticsService{
		store: store,
		cache: cache,
		Now:   time.Now,
	}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, restaurantID string) (*domain.Dashboard, error) {
	cacheKey := "dashboard:" + restaurantID
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var dash domain.Dashboard
		if err := json.Unmarshal(cached, &dash); err == nil {
			return &dash, nil
		}
	}

	totalOrders, totalRevenue, err := s.store.RestaurantTotals(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("restaurant totals: %w", err)
	}

	stats, err := s.buildStats(restaurantID, totalOrders, totalRevenue)
	if err != nil {
		return nil, err
	}

	trend, err := s.buildTrend(func(from, to time.Time) (map[string]int, error) {
		return s.store.DailyOrderCounts(restaurantID, from, to)
	})
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}

	byCategory, err := s.store.RevenueByCategory(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	if byCategory == nil {
		byCategory = []domain.CategoryRevenue{}
	}

	mostSold, err := s.store.MostSoldItems(restaurantID, mostSoldLimit)
	if err != nil {
		return nil, fmt.Errorf("most sold items: %w", err)
	}

	dash := &domain.Dashboard{
		RestaurantID:      restaurantID,
		Stats:             stats,
		DailyOrderTrends:  trend,
		RevenueByCategory: byCategory,
		MostSoldItems:     applyShares(mostSold),
	}
	s.toCache(ctx, cacheKey, dash)
	return dash, nil
}

func (s *AnalyticsService) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	const cacheKey = "dashboard:admin"
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var dash domain.AdminDashboard
		if err := json.Unmarshal(cached, &dash); err == nil {
			return &dash, nil
		}
	}

	totalOrders, totalRevenue, restaurants, err := s.store.PlatformTotals()
	if err != nil {
		return nil, fmt.Errorf("platform totals: %w", err)
	}

	stats, err := s.buildPlatformStats(totalOrders, totalRevenue)
	if err != nil {
		return nil, err
	}

	trend, err := s.buildTrend(s.store.PlatformDailyOrderCounts)
	if err != nil {
		return nil, fmt.Errorf("platform trend: %w", err)
	}

	byRestaurant, err := s.store.RevenueByRestaurant()
	if err != nil {
		return nil, fmt.Errorf("revenue by restaurant: %w", err)
	}
	if byRestaurant == nil {
		byRestaurant = []domain.RestaurantRevenue{}
	}

	mostSold, err := s.store.PlatformMostSoldItems(mostSoldLimit)
	if err != nil {
		return nil, fmt.Errorf("platform most sold: %w", err)
	}

	dash := &domain.AdminDashboard{
		Stats:               stats,
		DailyOrderTrends:    trend,
		RevenueByRestaurant: byRestaurant,
		MostSoldItems:       applyShares(mostSold),
		RestaurantCount:     restaurants,
	}
	s.toCache(ctx, cacheKey, dash)
	return dash, nil
}

func (s *AnalyticsService) buildStats(restaurantID string, totalOrders int, totalRevenue float64) (domain.DashboardStats, error) {
	windows := s.windows()

	todayOrders, todayRevenue, err := s.store.OrdersBetween(restaurantID, windows.todayStart, windows.now)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("today window: %w", err)
	}
	yesterdayOrders, yesterdayRevenue, err := s.store.OrdersBetween(restaurantID, windows.yesterdayStart, windows.todayStart)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("yesterday window: %w", err)
	}
	monthOrders, monthRevenue, err := s.store.OrdersBetween(restaurantID, windows.monthStart, windows.now)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("month window: %w", err)
	}
	lastMonthOrders, lastMonthRevenue, err := s.store.OrdersBetween(restaurantID, windows.lastMonthStart, windows.monthStart)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("last month window: %w", err)
	}

	return assembleStats(totalOrders, totalRevenue,
		todayOrders, todayRevenue, yesterdayOrders, yesterdayRevenue,
		monthOrders, monthRevenue, lastMonthOrders, lastMonthRevenue), nil
}

func (s *AnalyticsService) buildPlatformStats(totalOrders int, totalRevenue float64) (domain.DashboardStats, error) {
	windows := s.windows()

	todayOrders, todayRevenue, err := s.store.PlatformOrdersBetween(windows.todayStart, windows.now)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("today window: %w", err)
	}
	yesterdayOrders, yesterdayRevenue, err := s.store.PlatformOrdersBetween(windows.yesterdayStart, windows.todayStart)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("yesterday window: %w", err)
	}
	monthOrders, monthRevenue, err := s.store.PlatformOrdersBetween(windows.monthStart, windows.now)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("month window: %w", err)
	}
	lastMonthOrders, lastMonthRevenue, err := s.store.PlatformOrdersBetween(windows.lastMonthStart, windows.monthStart)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("last month window: %w", err)
	}

	return assembleStats(totalOrders, totalRevenue,
		todayOrders, todayRevenue, yesterdayOrders, yesterdayRevenue,
		monthOrders, monthRevenue, lastMonthOrders, lastMonthRevenue), nil
}

func assembleStats(totalOrders int, totalRevenue float64,
	todayOrders int, todayRevenue float64, yesterdayOrders int, yesterdayRevenue float64,
	monthOrders int, monthRevenue float64, lastMonthOrders int, lastMonthRevenue float64) domain.DashboardStats {
	return domain.DashboardStats{
		TotalOrders:      totalOrders,
		TotalProfit:      totalRevenue,
		TodayOrders:      todayOrders,
		TodayOrdersDelta: renderDelta(float64(yesterdayOrders), float64(todayOrders), "yesterday"),
		TodayProfit:      todayRevenue,
		TodayProfitDelta: renderDelta(yesterdayRevenue, todayRevenue, "yesterday"),
		MonthOrders:      monthOrders,
		MonthOrdersDelta: renderDelta(float64(lastMonthOrders), float64(monthOrders), "last month"),
		MonthProfit:      monthRevenue,
		MonthProfitDelta: renderDelta(lastMonthRevenue, monthRevenue, "last month"),
	}
}

type reportWindows struct {
	now            time.Time
	todayStart     time.Time
	yesterdayStart time.Time
	monthStart     time.Time
	lastMonthStart time.Time
}

func (s *AnalyticsService) windows() reportWindows {
	now := s.Now().In(reportingZone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, reportingZone)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, reportingZone)
	return reportWindows{
		now:            now,
		todayStart:     today,
		yesterdayStart: today.AddDate(0, 0, -1),
		monthStart:     month,
		lastMonthStart: month.AddDate(0, -1, 0),
	}
}

// buildTrend zero-fills the last seven calendar days, oldest first, labelled
// with short weekday names.
func (s *AnalyticsService) buildTrend(counts func(from, to time.Time) (map[string]int, error)) ([]domain.TrendPoint, error) {
	windows := s.windows()
	from := windows.todayStart.AddDate(0, 0, -(trendDays - 1))
	byDate, err := counts(from, windows.now)
	if err != nil {
		return nil, err
	}

	trend := make([]domain.TrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		day := from.AddDate(0, 0, i)
		trend = append(trend, domain.TrendPoint{
			Day:    day.Format("Mon"),
			Orders: byDate[day.Format("2006-01-02")],
		})
	}
	return trend, nil
}

// renderDelta compares against the previous window. A previous value of zero
// reads as +100% growth whenever anything happened at all.
func renderDelta(prev, cur float64, period string) string {
	var pct int
	switch {
	case prev == 0 && cur == 0:
		pct = 0
	case prev == 0:
		pct = 100
	default:
		pct = int(math.Round((cur - prev) / prev * 100))
	}
	return fmt.Sprintf("%+d%% from %s", pct, period)
}

// applyShares fills each item's integer share of the listed total.
func applyShares(items []domain.SoldItem) []domain.SoldItem {
	if len(items) == 0 {
		return []domain.SoldItem{}
	}
	sum := 0
	for _, item := range items {
		sum += item.TotalOrders
	}
	if sum == 0 {
		return items
	}
	for i := range items {
		items[i].Percentage = int(math.Round(float64(items[i].TotalOrders) / float64(sum) * 100))
	}
	return items
}

func (s *AnalyticsService) fromCache(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	return payload
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, dash interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(dash)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, dashboardCacheTTL); err != nil {
		log.Printf("[analytics-svc] cache write failed for %s: %v", key, err)
	}
}

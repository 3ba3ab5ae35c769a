package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pricing
type AlertRepository interface {
	CreateAlert(ctx context.Context, a *Alert) error
	ListAlerts(ctx context.Context, userID uuid.UUID) ([]*Alert, error)
}

// ItemSource yields a user's purchased items.
type ItemSource interface {
	Items(ctx context.Context, userID uuid.UUID) ([]receipt.Item, error)
}

// AlertPublisher announces new alerts to downstream consumers.
type AlertPublisher interface {
	PublishAlertCreated(ctx context.Context, a *Alert) error
}

const predictedProducts = 5

// fallbackBasket is predicted for users with no purchase history.
var fallbackBasket = []string{"milk", "eggs", "rice"}

type Service struct {
	alerts    AlertRepository
	items     ItemSource
	publisher AlertPublisher
	predictor PricePredictor
	now       func() time.Time
}

func NewService(alerts AlertRepository, items ItemSource, publisher AlertPublisher, predictor PricePredictor) *Service {
	return &Service{
		alerts:    alerts,
		items:     items,
		publisher: publisher,
		predictor: predictor,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) quote(st Store, product string, at time.Time) Quote {
	key := st.ID + "|" + strings.ToLower(product)
	variation := s.predictor.Factor(key+"|price", 0.9, 1.1)

	return Quote{
		StoreID:      st.ID,
		StoreName:    st.Name,
		ProductName:  product,
		Price:        round2(BasePrice(product) * st.Multiplier * variation),
		Currency:     Currency,
		Availability: "in_stock",
		Confidence:   round1(s.predictor.Factor(key+"|confidence", 85, 99)),
		LastUpdated:  at,
	}
}

// Compare queries every tracked store concurrently and picks the best deal per
// product. Quotes keep the order of Stores.
func (s *Service) Compare(ctx context.Context, products []string) (*Comparison, error) {
	names := make([]string, 0, len(products))

	for _, p := range products {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}

	if len(names) == 0 {
		return nil, apperr.Invalid("products", "no products specified")
	}

	now := s.now()
	quotes := make([][]Quote, len(Stores))

	g, gctx := errgroup.WithContext(ctx)

	for i, st := range Stores {
		g.Go(func() error {
			row := make([]Quote, 0, len(names))

			for _, name := range names {
				if err := gctx.Err(); err != nil {
					return err
				}

				row = append(row, s.quote(st, name, now))
			}

			quotes[i] = row

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comparing prices: %w", err)
	}

	out := &Comparison{
		Timestamp: now,
		Products:  make(map[string][]Quote, len(names)),
		BestDeals: make([]BestDeal, 0, len(names)),
	}

	for j, name := range names {
		if _, seen := out.Products[name]; seen {
			continue
		}

		perStore := make([]Quote, len(Stores))
		for i := range Stores {
			perStore[i] = quotes[i][j]
		}

		out.Products[name] = perStore

		deal := bestDeal(name, perStore)
		out.BestDeals = append(out.BestDeals, deal)
		out.TotalSavings += deal.Savings
	}

	out.TotalSavings = round2(out.TotalSavings)

	return out, nil
}

// CreateAlert stores a price alert for the given stores and publishes it.
// A failed publish is logged, not returned.
func (s *Service) CreateAlert(ctx context.Context, userID uuid.UUID, params CreateAlertParams) (*Alert, error) {
	name := strings.TrimSpace(params.ProductName)
	if name == "" {
		return nil, apperr.Invalid("product_name", "required")
	}

	if params.TargetPrice <= 0 {
		return nil, apperr.Invalid("target_price", "must be positive")
	}

	if len(params.Stores) == 0 {
		return nil, apperr.Invalid("stores", "required")
	}

	stores := make([]string, 0, len(params.Stores))

	for _, id := range params.Stores {
		st, ok := storeByID(id)
		if !ok {
			return nil, apperr.Invalid("stores", fmt.Sprintf("unknown store %q", id))
		}

		stores = append(stores, st.ID)
	}

	alertType := strings.TrimSpace(params.AlertType)
	if alertType == "" {
		alertType = DefaultAlertType
	}

	a := &Alert{
		UserID:      userID,
		ProductName: name,
		TargetPrice: params.TargetPrice,
		Stores:      stores,
		AlertType:   alertType,
		IsActive:    true,
	}

	if err := s.alerts.CreateAlert(ctx, a); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishAlertCreated(ctx, a); err != nil {
		slog.Warn("failed to publish price alert", "alert_id", a.ID, "error", err)
	}

	return a, nil
}

// Alerts lists the user's alerts with the cheapest current quote among each
// alert's stores. An alert triggers once that quote is at or below target.
func (s *Service) Alerts(ctx context.Context, userID uuid.UUID) ([]AlertStatus, error) {
	alerts, err := s.alerts.ListAlerts(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]AlertStatus, 0, len(alerts))

	for _, a := range alerts {
		st := AlertStatus{Alert: a}

		for _, id := range a.Stores {
			store, ok := storeByID(id)
			if !ok {
				continue
			}

			q := s.quote(store, a.ProductName, now)
			if st.StoreName == "" || q.Price < st.CurrentPrice {
				st.CurrentPrice = q.Price
				st.StoreName = q.StoreName
			}
		}

		if st.StoreName != "" && a.IsActive && st.CurrentPrice <= a.TargetPrice {
			st.Triggered = true
			st.PercentageDrop = round1((a.TargetPrice - st.CurrentPrice) / a.TargetPrice * 100)
		}

		out = append(out, st)
	}

	return out, nil
}

// Trends builds a daily price history for the last 30 days ending today, its
// statistics and a one-week forecast. Volatility is the coefficient of
// variation of the history.
func (s *Service) Trends(product string) (*PriceTrend, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, apperr.Invalid("product", "required")
	}

	now := s.now()
	day := now.Format("2006-01-02")
	base := BasePrice(product)
	key := strings.ToLower(product)

	out := &PriceTrend{ProductName: product, History: make([]PricePoint, 0, trendDays)}
	trendStores := Stores[:3]

	var sum float64

	for i := range trendDays {
		date := now.AddDate(0, 0, -(trendDays - 1 - i))
		dayKey := fmt.Sprintf("%s|%s|%s", key, day, date.Format("2006-01-02"))

		price := round2(base * s.predictor.Factor(dayKey+"|price", 0.9, 1.15))
		storeIdx := min(int(s.predictor.Factor(dayKey+"|store", 0, float64(len(trendStores)))), len(trendStores)-1)

		out.History = append(out.History, PricePoint{Date: date, Price: price, Store: trendStores[storeIdx].Name})
		sum += price

		if i == 0 || price < out.Statistics.MinPrice {
			out.Statistics.MinPrice = price
		}

		if price > out.Statistics.MaxPrice {
			out.Statistics.MaxPrice = price
		}
	}

	mean := sum / trendDays

	var variance float64
	for _, p := range out.History {
		variance += (p.Price - mean) * (p.Price - mean)
	}

	out.Statistics.AvgPrice = round2(mean)
	out.Statistics.Volatility = round2(math.Sqrt(variance/trendDays) / mean)
	out.CurrentPrice = out.History[len(out.History)-1].Price

	next := base * s.predictor.Factor(key+"|"+day+"|next", 0.95, 1.05)
	out.Prediction = Prediction{
		NextWeek:   round2(next),
		Confidence: round1(s.predictor.Factor(key+"|"+day+"|confidence", 75, 95)),
		Trend:      classifyTrend(next, base),
	}

	return out, nil
}

// Predictions forecasts next week's price for the user's most bought products.
func (s *Service) Predictions(ctx context.Context, userID uuid.UUID) (*Predictions, error) {
	items, err := s.items.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	type basketItem struct {
		name     string
		quantity int
	}

	var basket []basketItem
	for _, p := range analytics.TopProducts(items, predictedProducts) {
		basket = append(basket, basketItem{name: p.ProductName, quantity: p.TotalQuantity})
	}

	if len(basket) == 0 {
		for _, name := range fallbackBasket {
			basket = append(basket, basketItem{name: name, quantity: 1})
		}
	}

	now := s.now()
	day := now.Format("2006-01-02")
	out := &Predictions{
		Predictions: make([]ProductPrediction, 0, len(basket)),
		Algorithm:   s.predictor.Name(),
		GeneratedAt: now,
	}

	for _, b := range basket {
		key := strings.ToLower(b.name) + "|" + day
		current := round2(BasePrice(b.name) * s.predictor.Factor(key+"|current", 0.9, 1.1))
		next := current * s.predictor.Factor(key+"|next", 0.95, 1.05)
		trend := classifyTrend(next, current)

		p := ProductPrediction{
			ProductName:      b.name,
			CurrentPrice:     current,
			PredictedPrice:   round2(next),
			Confidence:       round1(s.predictor.Factor(key+"|confidence", 75, 95)),
			Trend:            trend,
			SavingsPotential: round2(math.Abs(next-current) * float64(max(b.quantity, 1))),
		}

		switch trend {
		case TrendUp:
			p.Recommendation = "buy_bulk"
			p.Factors = []string{"seasonal_demand", "supply_shortage"}
		case TrendDown:
			p.Recommendation = "wait"
			p.Factors = []string{"new_harvest", "increased_competition"}
		default:
			p.Recommendation = "buy_now"
			p.Factors = []string{"seasonal_discount", "supply_increase"}
		}

		out.Predictions = append(out.Predictions, p)
	}

	return out, nil
}

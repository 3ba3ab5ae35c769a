package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
)

type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type quoteResponse struct {
	StoreID      string    `json:"store_id"`
	StoreName    string    `json:"store_name"`
	ProductName  string    `json:"product_name"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Availability string    `json:"availability"`
	Confidence   float64   `json:"confidence"`
	LastUpdated  time.Time `json:"last_updated"`
}

type bestDealResponse struct {
	Product   string  `json:"product"`
	BestPrice float64 `json:"best_price"`
	Store     string  `json:"store"`
	Savings   float64 `json:"savings"`
}

type comparisonResponse struct {
	Timestamp    time.Time                  `json:"timestamp"`
	Products     map[string][]quoteResponse `json:"products"`
	BestDeals    []bestDealResponse         `json:"best_deals"`
	TotalSavings float64                    `json:"total_savings"`
}

func toComparisonResponse(c *pricing.Comparison) comparisonResponse {
	resp := comparisonResponse{
		Timestamp:    c.Timestamp,
		Products:     make(map[string][]quoteResponse, len(c.Products)),
		BestDeals:    make([]bestDealResponse, len(c.BestDeals)),
		TotalSavings: c.TotalSavings,
	}

	for name, quotes := range c.Products {
		qs := make([]quoteResponse, len(quotes))
		for i, q := range quotes {
			qs[i] = quoteResponse(q)
		}

		resp.Products[name] = qs
	}

	for i, d := range c.BestDeals {
		resp.BestDeals[i] = bestDealResponse(d)
	}

	return resp
}

type alertResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductName    string    `json:"product_name"`
	TargetPrice    float64   `json:"target_price"`
	Stores         []string  `json:"stores"`
	AlertType      string    `json:"alert_type"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	CurrentPrice   *float64  `json:"current_price,omitempty"`
	StoreName      string    `json:"store_name,omitempty"`
	Triggered      bool      `json:"triggered"`
	PercentageDrop float64   `json:"percentage_drop"`
}

func toAlertResponse(a *pricing.Alert) alertResponse {
	return alertResponse{
		ID:          a.ID,
		ProductName: a.ProductName,
		TargetPrice: a.TargetPrice,
		Stores:      a.Stores,
		AlertType:   a.AlertType,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

func toAlertStatusResponses(ss []pricing.AlertStatus) []alertResponse {
	resp := make([]alertResponse, len(ss))
	for i, s := range ss {
		resp[i] = toAlertResponse(s.Alert)

		if s.StoreName != "" {
			resp[i].CurrentPrice = new(s.CurrentPrice)
			resp[i].StoreName = s.StoreName
		}

		resp[i].Triggered = s.Triggered
		resp[i].PercentageDrop = s.PercentageDrop
	}

	return resp
}

type pricePointResponse struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
	Store string    `json:"store"`
}

type predictionResponse struct {
	NextWeek   float64       `json:"next_week"`
	Confidence float64       `json:"confidence"`
	Trend      pricing.Trend `json:"trend"`
}

type statisticsResponse struct {
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	AvgPrice   float64 `json:"avg_price"`
	Volatility float64 `json:"volatility"`
}

type trendResponse struct {
	ProductName  string               `json:"product_name"`
	PriceHistory []pricePointResponse `json:"price_history"`
	CurrentPrice float64              `json:"current_price"`
	Prediction   predictionResponse   `json:"prediction"`
	Statistics   statisticsResponse   `json:"statistics"`
}

func toTrendResponse(t *pricing.PriceTrend) trendResponse {
	resp := trendResponse{
		ProductName:  t.ProductName,
		PriceHistory: make([]pricePointResponse, len(t.History)),
		CurrentPrice: t.CurrentPrice,
		Prediction:   predictionResponse(t.Prediction),
		Statistics:   statisticsResponse(t.Statistics),
	}

	for i, p := range t.History {
		resp.PriceHistory[i] = pricePointResponse(p)
	}

	return resp
}

type productPredictionResponse struct {
	ProductName            string        `json:"product_name"`
	CurrentPrice           float64       `json:"current_price"`
	PredictedPriceNextWeek float64       `json:"predicted_price_next_week"`
	Confidence             float64       `json:"confidence"`
	Trend                  pricing.Trend `json:"trend"`
	Recommendation         string        `json:"recommendation"`
	SavingsPotential       float64       `json:"savings_potential"`
	Factors                []string      `json:"factors"`
}

type modelInfoResponse struct {
	Algorithm   string    `json:"algorithm"`
	LastUpdated time.Time `json:"last_updated"`
}

type predictionsResponse struct {
	Predictions []productPredictionResponse `json:"predictions"`
	ModelInfo   modelInfoResponse           `json:"model_info"`
}

func toPredictionsResponse(p *pricing.Predictions) predictionsResponse {
	resp := predictionsResponse{
		Predictions: make([]productPredictionResponse, len(p.Predictions)),
		ModelInfo:   modelInfoResponse{Algorithm: p.Algorithm, LastUpdated: p.GeneratedAt},
	}

	for i, pp := range p.Predictions {
		resp.Predictions[i] = productPredictionResponse{
			ProductName:            pp.ProductName,
			CurrentPrice:           pp.CurrentPrice,
			PredictedPriceNextWeek: pp.PredictedPrice,
			Confidence:             pp.Confidence,
			Trend:                  pp.Trend,
			Recommendation:         pp.Recommendation,
			SavingsPotential:       pp.SavingsPotential,
			Factors:                pp.Factors,
		}
	}

	return resp
}

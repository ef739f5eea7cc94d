package models

// MonthlyStat is one month of aggregated closed-sale statistics.
// Month labels are "YYYY-MM" and sequences are ordered ascending; months that
// failed the minimum sample size are absent, not zero-filled.
type MonthlyStat struct {
	Month          string   `json:"month"`
	SalesCount     int      `json:"sales_count"`
	AvgPrice       float64  `json:"avg_price"`
	PriceStdDev    float64  `json:"price_stddev"`
	MinPrice       float64  `json:"min_price"`
	MaxPrice       float64  `json:"max_price"`
	AvgPricePerSqm *float64 `json:"avg_price_per_sqm"`
	AvgDaysOnMkt   float64  `json:"avg_dom"`
}

// TrendResult is the least-squares fit over a monthly average-price series.
type TrendResult struct {
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	RSquared        float64 `json:"r_squared"`
	AnnualChangePct float64 `json:"annual_change_pct"`
	Direction       string  `json:"direction"`
}

// ForecastPoint is the projected price at one forward horizon.
type ForecastPoint struct {
	MonthsAhead       int     `json:"months_ahead"`
	ForecastDate      string  `json:"forecast_date"`
	PredictedPrice    float64 `json:"predicted_price"`
	LowEstimate       float64 `json:"low_estimate"`
	HighEstimate      float64 `json:"high_estimate"`
	ChangeFromCurrent float64 `json:"change_from_current"`
	ChangePct         float64 `json:"change_pct"`
}

type AppreciationResult struct {
	ThreeMonth     float64 `json:"3_month"`
	SixMonth       float64 `json:"6_month"`
	TwelveMonth    float64 `json:"12_month"`
	AverageMonthly float64 `json:"average_monthly"`
}

type MomentumResult struct {
	Status        string  `json:"status"`
	Direction     string  `json:"direction"`
	Strength      float64 `json:"strength"`
	RecentPct     float64 `json:"recent_change_pct"`
	LongerTermPct float64 `json:"longer_term_change_pct"`
	MomentumDiff  float64 `json:"momentum_diff"`
	Description   string  `json:"description"`
}

type ConfidenceResult struct {
	Score       float64 `json:"score"`
	Level       string  `json:"level"`
	RSquared    float64 `json:"r_squared"`
	Volatility  float64 `json:"volatility"`
	DataPoints  int     `json:"data_points"`
	Description string  `json:"description"`
}

// ForecastResult is the full engine output for one query. When Success is
// false only Message, MinRequired and DataPoints are populated.
type ForecastResult struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message,omitempty"`
	MinRequired  int                 `json:"min_required,omitempty"`
	Trend        *TrendResult        `json:"trend,omitempty"`
	Forecast     []ForecastPoint     `json:"forecast,omitempty"`
	Appreciation *AppreciationResult `json:"appreciation,omitempty"`
	Momentum     *MomentumResult     `json:"momentum,omitempty"`
	Confidence   *ConfidenceResult   `json:"confidence,omitempty"`
	CurrentPrice float64             `json:"current_price,omitempty"`
	CurrentMonth string              `json:"current_month,omitempty"`
	DataPoints   int                 `json:"data_points"`
}

// ProjectedValue is the compounded value of a property at one year horizon.
type ProjectedValue struct {
	Value           float64 `json:"value"`
	Appreciation    float64 `json:"appreciation"`
	AppreciationPct float64 `json:"appreciation_pct"`
}

type RiskAssessment struct {
	Score       float64     `json:"score"`
	Level       string      `json:"level"`
	Description string      `json:"description"`
	Factors     RiskFactors `json:"factors"`
}

// RiskFactors echoes the raw inputs that produced a risk score.
type RiskFactors struct {
	Volatility     float64 `json:"volatility"`
	TrendDirection string  `json:"trend_direction"`
	MomentumStatus string  `json:"momentum_status"`
}

type InvestmentResult struct {
	Success                bool                      `json:"success"`
	Message                string                    `json:"message,omitempty"`
	MinRequired            int                       `json:"min_required,omitempty"`
	DataPoints             int                       `json:"data_points,omitempty"`
	CurrentValue           float64                   `json:"current_value,omitempty"`
	AnnualAppreciationRate float64                   `json:"annual_appreciation_rate,omitempty"`
	ProjectedValues        map[string]ProjectedValue `json:"projected_values,omitempty"`
	RiskAssessment         *RiskAssessment           `json:"risk_assessment,omitempty"`
}

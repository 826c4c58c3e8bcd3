package chi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/calculator"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/domain/search/result"
)

type contentRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

type analyzeResponse struct {
	Analysis analysis.Result `json:"analysis"`
}

type createNotebookRequest struct {
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	StockCode      string   `json:"stock_code"`
	CompanyName    string   `json:"company_name"`
	InvestmentGoal string   `json:"investment_goal"`
	RiskFactors    string   `json:"risk_factors"`
	Tags           []string `json:"tags"`
}

func (r *createNotebookRequest) attrs() domnb.Attrs {
	return domnb.Attrs{
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		StockCode:      r.StockCode,
		CompanyName:    r.CompanyName,
		InvestmentGoal: r.InvestmentGoal,
		RiskFactors:    r.RiskFactors,
		Tags:           r.Tags,
	}
}

type addEntryRequest struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type entryResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type notebookResponse struct {
	ID             string          `json:"id"`
	Owner          string          `json:"owner"`
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle"`
	StockCode      string          `json:"stock_code"`
	CompanyName    string          `json:"company_name"`
	InvestmentGoal string          `json:"investment_goal"`
	RiskFactors    string          `json:"risk_factors"`
	Tags           []string        `json:"tags"`
	EntryCount     int             `json:"entry_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Entries        []entryResponse `json:"entries,omitempty"`
}

type notebookListResponse struct {
	Items []notebookResponse `json:"items"`
	Total int                `json:"total"`
}

type hitResponse struct {
	NotebookID     string    `json:"notebook_id"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle"`
	RelevanceScore float64   `json:"relevance_score"`
	ContentPreview string    `json:"content_preview"`
	Tags           []string  `json:"tags"`
	UpdatedAt      time.Time `json:"updated_at"`
	EntryCount     int       `json:"entry_count"`
}

type relatedResponse struct {
	NotebookID      string    `json:"notebook_id"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	SimilarityScore float64   `json:"similarity_score"`
	MatchingAspects []string  `json:"matching_aspects"`
	Tags            []string  `json:"tags"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type resultsResponse[T any] struct {
	Results []T `json:"results"`
}

// calculateRequest carries the inputs of every calculator; each kind reads its own fields.
type calculateRequest struct {
	Type             calculator.Kind `json:"type"`
	AnnualDividend   decimal.Decimal `json:"annual_dividend"`
	StockPrice       decimal.Decimal `json:"stock_price"`
	TargetShares     int64           `json:"target_shares"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	TargetPrice      decimal.Decimal `json:"target_price"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	TotalPortfolio   decimal.Decimal `json:"total_portfolio"`
	Principal        decimal.Decimal `json:"principal"`
	AnnualRate       decimal.Decimal `json:"annual_rate"`
	Years            int             `json:"years"`
}

type calculateResponse struct {
	Type   calculator.Kind `json:"type"`
	Result any             `json:"result"`
}

func notebookToResponse(nb *domnb.Notebook, withEntries bool) notebookResponse {
	resp := notebookResponse{
		ID:             nb.ID(),
		Owner:          nb.Owner(),
		Title:          nb.Title(),
		Subtitle:       nb.Subtitle(),
		StockCode:      nb.StockCode(),
		CompanyName:    nb.CompanyName(),
		InvestmentGoal: nb.InvestmentGoal(),
		RiskFactors:    nb.RiskFactors(),
		Tags:           nonNil(nb.Tags()),
		EntryCount:     nb.EntryCount(),
		CreatedAt:      nb.CreatedAt().UTC(),
		UpdatedAt:      nb.UpdatedAt().UTC(),
	}
	if withEntries {
		for _, e := range nb.RecentEntries(-1) {
			resp.Entries = append(resp.Entries, entryToResponse(&e))
		}
	}
	return resp
}

func entryToResponse(e *domnb.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID(),
		Type:      string(e.Type()),
		Title:     e.Title(),
		Content:   e.Content(),
		Tags:      nonNil(e.Tags()),
		CreatedAt: e.CreatedAt().UTC(),
	}
}

func hitToResponse(h *result.Hit) hitResponse {
	return hitResponse{
		NotebookID:     h.NotebookID(),
		Title:          h.Title(),
		Subtitle:       h.Subtitle(),
		RelevanceScore: h.Score(),
		ContentPreview: h.Preview(),
		Tags:           nonNil(h.Tags()),
		UpdatedAt:      h.UpdatedAt().UTC(),
		EntryCount:     h.EntryCount(),
	}
}

func relatedToResponse(r *result.Related) relatedResponse {
	return relatedResponse{
		NotebookID:      r.NotebookID(),
		Title:           r.Title(),
		Subtitle:        r.Subtitle(),
		SimilarityScore: r.Similarity(),
		MatchingAspects: nonNil(r.MatchingAspects()),
		Tags:            nonNil(r.Tags()),
		UpdatedAt:       r.UpdatedAt().UTC(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Calculator outputs are rendered as JSON numbers.

type dividendYieldResponse struct {
	YieldRate       float64 `json:"yield_rate"`
	AnnualDividend  float64 `json:"annual_dividend"`
	StockPrice      float64 `json:"stock_price"`
	MonthlyDividend float64 `json:"monthly_dividend"`
	Evaluation      string  `json:"evaluation"`
}

type investmentAmountResponse struct {
	StockPrice   float64 `json:"stock_price"`
	TargetShares int64   `json:"target_shares"`
	TotalAmount  float64 `json:"total_amount"`
	Commission   float64 `json:"commission"`
	TotalCost    float64 `json:"total_cost"`
	PerShareCost float64 `json:"per_share_cost"`
}

type targetAchievementResponse struct {
	CurrentPrice float64 `json:"current_price"`
	TargetPrice  float64 `json:"target_price"`
	ChangeAmount float64 `json:"change_amount"`
	ChangeRate   float64 `json:"change_rate"`
	Status       string  `json:"status"`
	Evaluation   string  `json:"evaluation"`
}

type portfolioWeightResponse struct {
	InvestmentAmount float64 `json:"investment_amount"`
	TotalPortfolio   float64 `json:"total_portfolio"`
	Weight           float64 `json:"weight"`
	RemainingAmount  float64 `json:"remaining_amount"`
	Evaluation       string  `json:"evaluation"`
}

type yearAmountResponse struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type compoundGrowthResponse struct {
	Principal       float64              `json:"principal"`
	AnnualRate      float64              `json:"annual_rate"`
	Years           int                  `json:"years"`
	FinalAmount     float64              `json:"final_amount"`
	TotalGain       float64              `json:"total_gain"`
	GainRate        float64              `json:"gain_rate"`
	YearlyBreakdown []yearAmountResponse `json:"yearly_breakdown"`
}

func f64(d decimal.Decimal) float64 { return d.InexactFloat64() }

func dividendYieldToResponse(r *calculator.DividendYieldResult) dividendYieldResponse {
	return dividendYieldResponse{
		YieldRate:       f64(r.YieldRate),
		AnnualDividend:  f64(r.AnnualDividend),
		StockPrice:      f64(r.StockPrice),
		MonthlyDividend: f64(r.MonthlyDividend),
		Evaluation:      r.Evaluation,
	}
}

func investmentAmountToResponse(r *calculator.InvestmentAmountResult) investmentAmountResponse {
	return investmentAmountResponse{
		StockPrice:   f64(r.StockPrice),
		TargetShares: r.TargetShares,
		TotalAmount:  f64(r.TotalAmount),
		Commission:   f64(r.Commission),
		TotalCost:    f64(r.TotalCost),
		PerShareCost: f64(r.PerShareCost),
	}
}

func targetAchievementToResponse(r *calculator.TargetAchievementResult) targetAchievementResponse {
	return targetAchievementResponse{
		CurrentPrice: f64(r.CurrentPrice),
		TargetPrice:  f64(r.TargetPrice),
		ChangeAmount: f64(r.ChangeAmount),
		ChangeRate:   f64(r.ChangeRate),
		Status:       string(r.Status),
		Evaluation:   r.Evaluation,
	}
}

func portfolioWeightToResponse(r *calculator.PortfolioWeightResult) portfolioWeightResponse {
	return portfolioWeightResponse{
		InvestmentAmount: f64(r.InvestmentAmount),
		TotalPortfolio:   f64(r.TotalPortfolio),
		Weight:           f64(r.Weight),
		RemainingAmount:  f64(r.RemainingAmount),
		Evaluation:       r.Evaluation,
	}
}

func compoundGrowthToResponse(r *calculator.CompoundGrowthResult) compoundGrowthResponse {
	years := make([]yearAmountResponse, len(r.YearlyBreakdown))
	for i, y := range r.YearlyBreakdown {
		years[i] = yearAmountResponse{Year: y.Year, Amount: f64(y.Amount)}
	}
	return compoundGrowthResponse{
		Principal:       f64(r.Principal),
		AnnualRate:      f64(r.AnnualRate),
		Years:           r.Years,
		FinalAmount:     f64(r.FinalAmount),
		TotalGain:       f64(r.TotalGain),
		GainRate:        f64(r.GainRate),
		YearlyBreakdown: years,
	}
}

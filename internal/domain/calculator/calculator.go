// Package calculator implements the notebook's investment calculators.
// Rates are rounded half-up to two decimals, amounts to whole yen.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/kabunote/internal/domain"
)

// Kind names a calculator.
type Kind string

// Calculator kinds.
const (
	KindDividendYield     Kind = "dividend_yield"
	KindInvestmentAmount  Kind = "investment_amount"
	KindTargetAchievement Kind = "target_achievement"
	KindPortfolioWeight   Kind = "portfolio_weight"
	KindCompoundGrowth    Kind = "compound_growth"
)

// IsValid checks if the kind is a known calculator.
func (k Kind) IsValid() bool {
	switch k {
	case KindDividendYield, KindInvestmentAmount, KindTargetAchievement,
		KindPortfolioWeight, KindCompoundGrowth:
		return true
	}
	return false
}

// MaxBreakdownYears caps the yearly breakdown of a compound growth projection.
const MaxBreakdownYears = 10

var (
	hundred       = decimal.NewFromInt(100)
	twelve        = decimal.NewFromInt(12)
	commissionPct = decimal.RequireFromString("0.001")
	minCommission = decimal.NewFromInt(100)
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidCalculation, msg)
}

func rate(d decimal.Decimal) decimal.Decimal   { return d.Round(2) }
func amount(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// DividendYieldResult is the outcome of DividendYield.
type DividendYieldResult struct {
	YieldRate       decimal.Decimal
	AnnualDividend  decimal.Decimal
	StockPrice      decimal.Decimal
	MonthlyDividend decimal.Decimal
	Evaluation      string
}

// DividendYield computes the dividend yield of a holding.
func DividendYield(annualDividend, stockPrice decimal.Decimal) (DividendYieldResult, error) {
	if !stockPrice.IsPositive() {
		return DividendYieldResult{}, invalid("株価は0より大きい値を入力してください")
	}
	y := rate(annualDividend.Div(stockPrice).Mul(hundred))
	return DividendYieldResult{
		YieldRate:       y,
		AnnualDividend:  annualDividend,
		StockPrice:      stockPrice,
		MonthlyDividend: annualDividend.Div(twelve),
		Evaluation:      evaluateDividendYield(y),
	}, nil
}

func evaluateDividendYield(y decimal.Decimal) string {
	switch {
	case y.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return "高配当（5%以上）"
	case y.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return "中配当（3-5%）"
	case y.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return "低配当（1-3%）"
	default:
		return "無配当級（1%未満）"
	}
}

// InvestmentAmountResult is the outcome of InvestmentAmount.
type InvestmentAmountResult struct {
	StockPrice   decimal.Decimal
	TargetShares int64
	TotalAmount  decimal.Decimal
	Commission   decimal.Decimal
	TotalCost    decimal.Decimal
	PerShareCost decimal.Decimal
}

// InvestmentAmount computes the cost of buying shares, including a 0.1% commission
// with a 100 yen minimum.
func InvestmentAmount(stockPrice decimal.Decimal, shares int64) (InvestmentAmountResult, error) {
	if !stockPrice.IsPositive() {
		return InvestmentAmountResult{}, invalid("株価は0より大きい値を入力してください")
	}
	if shares <= 0 {
		return InvestmentAmountResult{}, invalid("株数は0より大きい値を入力してください")
	}
	n := decimal.NewFromInt(shares)
	total := amount(stockPrice.Mul(n))
	commission := decimal.Max(total.Mul(commissionPct), minCommission)
	cost := total.Add(commission)
	return InvestmentAmountResult{
		StockPrice:   stockPrice,
		TargetShares: shares,
		TotalAmount:  total,
		Commission:   commission,
		TotalCost:    cost,
		PerShareCost: cost.Div(n),
	}, nil
}

// Status is the direction of a price target.
type Status string

// Status constants.
const (
	StatusProfit    Status = "profit"
	StatusLoss      Status = "loss"
	StatusBreakEven Status = "break_even"
)

// TargetAchievementResult is the outcome of TargetAchievement.
type TargetAchievementResult struct {
	CurrentPrice decimal.Decimal
	TargetPrice  decimal.Decimal
	ChangeAmount decimal.Decimal
	ChangeRate   decimal.Decimal
	Status       Status
	Evaluation   string
}

// TargetAchievement computes the move required to reach a target price.
func TargetAchievement(current, target decimal.Decimal) (TargetAchievementResult, error) {
	if !current.IsPositive() {
		return TargetAchievementResult{}, invalid("現在価格は0より大きい値を入力してください")
	}
	if !target.IsPositive() {
		return TargetAchievementResult{}, invalid("目標価格は0より大きい値を入力してください")
	}
	change := target.Sub(current)
	r := rate(change.Div(current).Mul(hundred))

	status := StatusBreakEven
	switch r.Sign() {
	case 1:
		status = StatusProfit
	case -1:
		status = StatusLoss
	}

	return TargetAchievementResult{
		CurrentPrice: current,
		TargetPrice:  target,
		ChangeAmount: change,
		ChangeRate:   r,
		Status:       status,
		Evaluation:   evaluateTarget(r),
	}, nil
}

func evaluateTarget(r decimal.Decimal) string {
	switch {
	case r.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return "大幅上昇期待"
	case r.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return "上昇期待"
	case r.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return "小幅上昇期待"
	case r.GreaterThanOrEqual(decimal.NewFromInt(-5)):
		return "ほぼ適正価格"
	case r.GreaterThanOrEqual(decimal.NewFromInt(-20)):
		return "小幅下落リスク"
	default:
		return "大幅下落リスク"
	}
}

// PortfolioWeightResult is the outcome of PortfolioWeight.
type PortfolioWeightResult struct {
	InvestmentAmount decimal.Decimal
	TotalPortfolio   decimal.Decimal
	Weight           decimal.Decimal
	RemainingAmount  decimal.Decimal
	Evaluation       string
}

// PortfolioWeight computes the share of a position in the whole portfolio.
func PortfolioWeight(investment, total decimal.Decimal) (PortfolioWeightResult, error) {
	if !total.IsPositive() {
		return PortfolioWeightResult{}, invalid("ポートフォリオ総額は0より大きい値を入力してください")
	}
	if investment.IsNegative() {
		return PortfolioWeightResult{}, invalid("投資金額は0以上の値を入力してください")
	}
	w := rate(investment.Div(total).Mul(hundred))
	return PortfolioWeightResult{
		InvestmentAmount: investment,
		TotalPortfolio:   total,
		Weight:           w,
		RemainingAmount:  total.Sub(investment),
		Evaluation:       evaluateWeight(w),
	}, nil
}

func evaluateWeight(w decimal.Decimal) string {
	switch {
	case w.GreaterThanOrEqual(decimal.NewFromInt(30)):
		return "集中投資（30%以上）"
	case w.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return "主力投資（20-30%）"
	case w.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return "中核投資（10-20%）"
	case w.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return "分散投資（5-10%）"
	default:
		return "少額投資（5%未満）"
	}
}

// YearAmount is one row of a compound growth breakdown.
type YearAmount struct {
	Year   int
	Amount decimal.Decimal
}

// CompoundGrowthResult is the outcome of CompoundGrowth.
type CompoundGrowthResult struct {
	Principal       decimal.Decimal
	AnnualRate      decimal.Decimal
	Years           int
	FinalAmount     decimal.Decimal
	TotalGain       decimal.Decimal
	GainRate        decimal.Decimal
	YearlyBreakdown []YearAmount
}

// CompoundGrowth projects principal compounded yearly at annualRate percent.
func CompoundGrowth(principal, annualRate decimal.Decimal, years int) (CompoundGrowthResult, error) {
	if !principal.IsPositive() {
		return CompoundGrowthResult{}, invalid("元本は0より大きい値を入力してください")
	}
	if years <= 0 {
		return CompoundGrowthResult{}, invalid("期間は0より大きい値を入力してください")
	}
	factor := decimal.NewFromInt(1).Add(annualRate.Div(hundred))

	current := principal
	breakdown := make([]YearAmount, 0, min(years, MaxBreakdownYears))
	for year := 1; year <= years; year++ {
		current = current.Mul(factor)
		if year <= MaxBreakdownYears {
			breakdown = append(breakdown, YearAmount{Year: year, Amount: amount(current)})
		}
	}
	gain := current.Sub(principal)

	return CompoundGrowthResult{
		Principal:       principal,
		AnnualRate:      annualRate,
		Years:           years,
		FinalAmount:     amount(current),
		TotalGain:       amount(gain),
		GainRate:        rate(gain.Div(principal).Mul(hundred)),
		YearlyBreakdown: breakdown,
	}, nil
}

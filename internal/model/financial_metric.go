package model

import "time"

type MetricCategory string

const (
	MetricBudget    MetricCategory = "budget"
	MetricTarget    MetricCategory = "target"
	MetricObjective MetricCategory = "objective"
)

type MetricUnit string

const (
	UnitCurrency   MetricUnit = "currency"
	UnitPercentage MetricUnit = "percentage"
	UnitNumber     MetricUnit = "number"
)

type MetricPeriod string

const (
	PeriodMonthly   MetricPeriod = "monthly"
	PeriodQuarterly MetricPeriod = "quarterly"
	PeriodYearly    MetricPeriod = "yearly"
)

// OnTargetThreshold is the attainment percentage from which a metric counts as on target.
const OnTargetThreshold = 80.0

type FinancialMetric struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"project_id"`
	Category     MetricCategory `json:"type"`
	Name         string         `json:"name"`
	CurrentValue float64        `json:"current_value"`
	TargetValue  float64        `json:"target_value"`
	Unit         MetricUnit     `json:"unit"`
	Period       MetricPeriod   `json:"period"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Valid checks the enum fields.
func (f FinancialMetric) Valid() bool {
	switch f.Category {
	case MetricBudget, MetricTarget, MetricObjective:
	default:
		return false
	}
	switch f.Unit {
	case UnitCurrency, UnitPercentage, UnitNumber:
	default:
		return false
	}
	switch f.Period {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
	default:
		return false
	}
	return true
}

// Attainment is current as a percentage of target, unclamped. Zero target yields 0.
func (f FinancialMetric) Attainment() float64 {
	if f.TargetValue == 0 {
		return 0
	}
	return f.CurrentValue / f.TargetValue * 100
}

func (f FinancialMetric) OnTarget() bool {
	return f.Attainment() >= OnTargetThreshold
}

// Exceeded reports attainment above 100%.
func (f FinancialMetric) Exceeded() bool {
	return f.Attainment() > 100
}

package metrics

const (
	namespace = "mealprep"

	LabelMethod     = "method"
	LabelPattern    = "pattern"
	LabelStatus     = "status"
	LabelTrigger    = "trigger"
	LabelKind       = "kind"
	LabelCollection = "collection"

	TriggerManual = "manual"
	TriggerAuto   = "auto"

	QuotaRecipes     = "recipes"
	QuotaMealHorizon = "meal_horizon"

	OutcomeOK     = "ok"
	OutcomeCached = "cached"
	OutcomeError  = "error"
)

var httpLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

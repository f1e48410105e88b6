package observability

// Metric name prefixes
const (
	MetricPrefix = "tokenlotto"
)

// Metric names
const (
	LedgerOperationsTotal  = MetricPrefix + ".ledger.operations_total"
	LotteryOperationsTotal = MetricPrefix + ".lottery.operations_total"
	MemoOperationsTotal    = MetricPrefix + ".memo.operations_total"
	PaymentDirectivesTotal = MetricPrefix + ".payments.directives_total"
)

// Label keys
const (
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelReason    = "reason"
)

package metrics

const (
	RestSubScope = "rest"
	TaskSubScope = "task"

	RequestMetric            = "request"
	RequestRetryMetric       = "request_retry"
	RequestRateLimitedMetric = "request_rate_limited"
	RequestExhaustedMetric   = "request_exhausted"
	RequestFailureMetric     = "request_failure"
	RequestLatencyMetric     = "request_latency"

	TaskExecutionSuccess = "execution_success"
	TaskExecutionFailure = "execution_failure"
	TaskExecutionLatency = "execution_latency"

	TaskNameTag = "task"
)

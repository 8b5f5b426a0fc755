package shared

// Process exit codes.
const (
	ExitOK          = 0
	ExitChartError  = 2
	ExitOutputError = 3
)

package output

import (
	"time"

	"transbot/internal/domain"
)

// Recorder receives operational counters from the use cases.
type Recorder interface {
	Intent(intent domain.Intent)
	Translation(succeeded bool, elapsed time.Duration)
	CacheLookup(hit bool)
	ReportFailed()
}

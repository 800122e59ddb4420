package agent

import (
	"fmt"
	"time"
)

const dateFormatISO = "2006-01-02"

// dateContext pins the 30 day news window to absolute dates.
func dateContext(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf(DateContextTemplate,
		now.Format(dateFormatISO),
		now.Weekday().String(),
		now.AddDate(0, 0, -30).Format(dateFormatISO),
		now.Format(dateFormatISO),
	)
}

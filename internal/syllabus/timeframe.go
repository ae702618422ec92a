package syllabus

import "fmt"

// Timeframe is a study plan horizon.
type Timeframe struct {
	Key      string
	Label    string
	Subtitle string
	Days     int
}

var Timeframes = []Timeframe{
	{Key: "1month", Label: "1 Month", Subtitle: "Intensive", Days: 30},
	{Key: "3months", Label: "3 Months", Subtitle: "Focused", Days: 90},
	{Key: "6months", Label: "6 Months", Subtitle: "Balanced", Days: 180},
	{Key: "1year", Label: "1 Year", Subtitle: "Comprehensive", Days: 365},
}

// DefaultTimeframe is preselected in the study plan screen.
const DefaultTimeframe = "3months"

// LookupTimeframe finds a timeframe by key.
func LookupTimeframe(key string) (Timeframe, error) {
	for _, tf := range Timeframes {
		if tf.Key == key {
			return tf, nil
		}
	}
	return Timeframe{}, fmt.Errorf("unknown timeframe %q (want 1month, 3months, 6months or 1year)", key)
}

// Day range accepted for chapter roadmaps.
const (
	MinDays     = 3
	MaxDays     = 21
	DefaultDays = 7
)

// ClampDays keeps n within [MinDays, MaxDays].
func ClampDays(n int) int {
	switch {
	case n < MinDays:
		return MinDays
	case n > MaxDays:
		return MaxDays
	}
	return n
}

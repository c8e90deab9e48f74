package filters

import (
	"math"
	"strconv"
	"time"

	"logistics/internal/entities"
)

// maxHours - граница, за которой часы не помещаются в time.Duration.
var maxHours = float64(math.MaxInt64) / float64(time.Hour)

// parseHours переводит дробное число часов в смещение.
// Нечисловые, бесконечные и не помещающиеся в time.Duration значения отбрасываются.
func parseHours(raw string) (time.Duration, bool) {
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, false
	}
	if math.Abs(hours) >= maxHours {
		return 0, false
	}
	return time.Duration(hours * float64(time.Hour)), true
}

// MinDuration строит условие arrival >= departure + hours.
func MinDuration(raw string) (entities.Predicate, bool) {
	offset, ok := parseHours(raw)
	if !ok {
		return nil, false
	}
	return entities.DurationAtLeast{Offset: offset}, true
}

// MaxDuration строит условие arrival <= departure + hours.
func MaxDuration(raw string) (entities.Predicate, bool) {
	offset, ok := parseHours(raw)
	if !ok {
		return nil, false
	}
	return entities.DurationAtMost{Offset: offset}, true
}

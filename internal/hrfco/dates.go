package hrfco

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The upstream URL grammar takes bare digit timestamps whose width depends on
// the granularity: YYYYMMDDHHMM for 10M, YYYYMMDDHH for 1H, YYYYMMDD for 1D.
// Users supply anything from "2024-07-01" to "3 days ago"; this file turns
// those into normalized range endpoints.

var (
	digitsOnly  = regexp.MustCompile(`^\d{8}(\d{2})?(\d{2})?(\d{2})?$`)
	relativeExp = regexp.MustCompile(`(?i)^(\d+)[ _]?(day|month|year)s?[ _]?ago$`)
)

// DateRange holds normalized range endpoints ready for URL composition.
type DateRange struct {
	Start string
	End   string
}

// normalizeDate parses a single date expression into a time plus a flag for
// whether the input carried sub-daily precision.
func normalizeDate(input string, now time.Time) (time.Time, bool, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return time.Time{}, false, Validationf("empty date expression")
	}

	switch s {
	case "today":
		return midnight(now), false, nil
	case "yesterday":
		return midnight(now).AddDate(0, 0, -1), false, nil
	case "tomorrow":
		return midnight(now).AddDate(0, 0, 1), false, nil
	}

	if m := relativeExp.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false, Validationf("unparseable relative date %q", input)
		}
		base := midnight(now)
		switch m[2] {
		case "day":
			return base.AddDate(0, 0, -n), false, nil
		case "month":
			return base.AddDate(0, -n, 0), false, nil
		default:
			return base.AddDate(-n, 0, 0), false, nil
		}
	}

	// Absolute forms: strip separators, then expect 8..14 digits.
	compact := strings.NewReplacer("-", "", "/", "", ".", "", ":", "", " ", "", "t", "").Replace(s)
	if !digitsOnly.MatchString(compact) {
		return time.Time{}, false, Validationf("unparseable date expression %q", input)
	}
	if len(compact) > 12 {
		compact = compact[:12] // drop seconds
	}

	layout := "20060102"
	subDaily := false
	switch len(compact) {
	case 8:
	case 10:
		layout, subDaily = "2006010215", true
	case 12:
		layout, subDaily = "200601021504", true
	default:
		return time.Time{}, false, Validationf("date %q has unexpected length", input)
	}

	t, err := time.ParseInLocation(layout, compact, now.Location())
	if err != nil {
		return time.Time{}, false, Validationf("invalid date %q: %v", input, err)
	}
	return t, subDaily, nil
}

// NormalizeRange validates and normalizes a (start, end) pair of user date
// expressions for the given granularity. Omitted endpoints default to a
// window ending now; inverted ranges are swapped; spans beyond the
// granularity limit are rejected.
func NormalizeRange(start, end string, g Granularity, now time.Time) (DateRange, error) {
	var (
		startT, endT time.Time
		startSub     bool
		endSub       bool
		err          error
	)

	switch {
	case start == "" && end == "":
		endT, endSub = now, true
		startT, startSub = now.Add(-g.DefaultWindow()), true
	case start == "":
		endT, endSub, err = normalizeDate(end, now)
		if err != nil {
			return DateRange{}, err
		}
		startT, startSub = endT.Add(-g.DefaultWindow()), endSub
	case end == "":
		startT, startSub, err = normalizeDate(start, now)
		if err != nil {
			return DateRange{}, err
		}
		endT, endSub = now, true
	default:
		startT, startSub, err = normalizeDate(start, now)
		if err != nil {
			return DateRange{}, err
		}
		endT, endSub, err = normalizeDate(end, now)
		if err != nil {
			return DateRange{}, err
		}
	}

	if startT.After(endT) {
		startT, endT = endT, startT
		startSub, endSub = endSub, startSub
	}

	if span := endT.Sub(startT); span > g.MaxSpan() {
		return DateRange{}, Validationf(
			"date span %s exceeds the %s limit for granularity %s",
			span.Round(time.Hour), g.MaxSpan(), g)
	}

	return DateRange{
		Start: emit(startT, g, startSub, false),
		End:   emit(endT, g, endSub, true),
	}, nil
}

// emit renders a timestamp at the granularity's width. Bare dates for
// sub-daily granularities are padded to the start or end of the day.
func emit(t time.Time, g Granularity, subDaily, isEnd bool) string {
	if g == T1D {
		return t.Format("20060102")
	}

	if !subDaily {
		if isEnd {
			if g == T10M {
				t = t.Add(23*time.Hour + 59*time.Minute)
			} else {
				t = t.Add(23 * time.Hour)
			}
		}
		// start of day is already 00:00
	}

	if g == T10M {
		return t.Format("200601021504")
	}
	return t.Format("2006010215")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

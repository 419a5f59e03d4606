package analyzer

import (
	"strings"
)

// immediateCrisisKeywords trigger the critical path without any further
// analysis.
var immediateCrisisKeywords = []string{
	"suicide", "kill myself", "end it", "can't go on",
	"no point", "give up", "better off dead", "hurt myself",
	"self harm", "cutting", "overdose", "want to die",
}

// secondaryCrisisPatterns are softer phrasings that still warrant a careful
// response.
var secondaryCrisisPatterns = []string{
	"can't take it", "can't do this", "want it to end", "nothing left",
	"no hope", "hopeless", "pointless", "meaningless life",
	"everyone would be better", "burden", "worthless",
	"tired of living", "tired of everything", "give up on life",
}

type CrisisSeverity string

const (
	CrisisNone     CrisisSeverity = "none"
	CrisisModerate CrisisSeverity = "moderate"
	CrisisCritical CrisisSeverity = "critical"
)

type CrisisCheck struct {
	Detected   bool
	Severity   CrisisSeverity
	Confidence float64
	Concerns   []string
	Immediate  bool
}

// CheckCrisis runs the two-tier crisis screen: explicit keywords return a
// critical result at 0.95 confidence, secondary phrasings a moderate result
// at 0.6.
func CheckCrisis(message string) CrisisCheck {
	lower := strings.ToLower(message)

	var concerns []string
	for _, kw := range immediateCrisisKeywords {
		if strings.Contains(lower, kw) {
			concerns = append(concerns, kw)
		}
	}
	if len(concerns) > 0 {
		return CrisisCheck{
			Detected:   true,
			Severity:   CrisisCritical,
			Confidence: 0.95,
			Concerns:   concerns,
			Immediate:  true,
		}
	}

	for _, p := range secondaryCrisisPatterns {
		if strings.Contains(lower, p) {
			concerns = append(concerns, p)
		}
	}
	if len(concerns) > 0 {
		return CrisisCheck{
			Detected:   true,
			Severity:   CrisisModerate,
			Confidence: 0.6,
			Concerns:   concerns,
		}
	}

	return CrisisCheck{Severity: CrisisNone, Confidence: 0.8}
}

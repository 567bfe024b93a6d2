// Package plandoc turns raw model replies into stored plan documents and
// pulls the scalar fields the travel_plans table indexes.
package plandoc

import (
	_ "embed"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	UnknownDestination = "未知目的地"
	DefaultDuration    = 3
)

var DefaultTotalBudget = decimal.NewFromInt(3000)

var (
	//go:embed fallback/shanghai.json
	shanghaiPlan string

	//go:embed fallback/beijing.json
	beijingPlan string
)

// Normalize returns the document to store for a model reply. A reply that is
// a single JSON object (optionally wrapped in a markdown code fence) is kept
// as is; anything else is replaced by a canned itinerary picked from the
// request text, and usedFallback reports that substitution.
//
// The fence is removed before the brace check, so a fenced object is kept
// even though the raw reply itself does not trim to {...}.
func Normalize(raw, travelRequest string) (doc string, usedFallback bool) {
	candidate := strings.TrimSpace(stripCodeFence(raw))
	if strings.HasPrefix(candidate, "{") && strings.HasSuffix(candidate, "}") && gjson.Valid(candidate) {
		return candidate, false
	}
	return FallbackFor(travelRequest), true
}

// FallbackFor picks the Shanghai itinerary when the request mentions it,
// Beijing otherwise.
func FallbackFor(travelRequest string) string {
	if strings.Contains(travelRequest, "上海") || strings.Contains(strings.ToLower(travelRequest), "shanghai") {
		return shanghaiPlan
	}
	return beijingPlan
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "json"), "JSON")
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}

package address

import (
	"regexp"
	"sort"
	"strings"
)

const (
	FallbackCity    = "City"
	FallbackState   = "State"
	FallbackPincode = "000000"
	DefaultCountry  = "India"
)

// Parsed holds the structured fields extracted from a free-text address.
type Parsed struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

var knownStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir",
	"Ladakh", "Lakshadweep", "Puducherry",
}

var (
	pincodePattern = regexp.MustCompile(`\b(\d{6})\b`)
	statePattern   = buildStatePattern()
	segmentSplit   = regexp.MustCompile(`[,;\n]+`)
	canonicalState = map[string]string{}
)

func buildStatePattern() *regexp.Regexp {
	names := make([]string, len(knownStates))
	copy(names, knownStates)
	// longest first so "Andhra Pradesh" wins over a shorter overlap
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
		canonicalState[strings.ToLower(n)] = n
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// ParseFreeText extracts city, state and pincode from a single-line address.
// Missing parts fall back to FallbackCity, FallbackState and FallbackPincode.
func ParseFreeText(text string) Parsed {
	out := Parsed{City: FallbackCity, State: FallbackState, Pincode: FallbackPincode}
	text = strings.TrimSpace(text)
	if text == "" {
		return out
	}

	if m := pincodePattern.FindStringSubmatch(text); m != nil {
		out.Pincode = m[1]
	}

	segments := splitSegments(text)
	stateIdx := -1
	var loc []int
	for i := len(segments) - 1; i >= 0; i-- {
		if l := statePattern.FindStringIndex(segments[i]); l != nil {
			stateIdx, loc = i, l
			break
		}
	}

	if stateIdx < 0 {
		if len(segments) >= 2 {
			if city := cleanCity(segments[len(segments)-1]); city != "" {
				out.City = city
			}
		}
		return out
	}

	seg := segments[stateIdx]
	out.State = canonicalState[strings.ToLower(seg[loc[0]:loc[1]])]
	if city := cleanCity(seg[:loc[0]]); city != "" {
		out.City = city
	} else if stateIdx > 0 {
		if city := cleanCity(segments[stateIdx-1]); city != "" {
			out.City = city
		}
	}
	return out
}

// splitSegments splits on separators, drops pincodes and a trailing country.
func splitSegments(text string) []string {
	parts := segmentSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(pincodePattern.ReplaceAllString(p, ""))
		p = strings.Trim(p, " -.")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 0 && strings.EqualFold(out[len(out)-1], DefaultCountry) {
		out = out[:len(out)-1]
	}
	return out
}

func cleanCity(s string) string {
	s = strings.Trim(strings.TrimSpace(s), " -.")
	if s == "" || strings.IndexFunc(s, isLetter) < 0 {
		return ""
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

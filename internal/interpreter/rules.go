package interpreter

import (
	"fmt"
	"regexp"
	"strings"
)

// Patch maps form field keys to extracted string values.
type Patch map[string]string

// Options tunes extraction behavior.
type Options struct {
	// MultiWord lets free-text captures (names, address, signature) run to
	// the next punctuation mark instead of the next whitespace. Off by
	// default: the frontend was built against single-token captures.
	MultiWord bool
}

// rule is one independent extraction rule. Every rule runs against the raw
// message; keywords gate the rule on a case-insensitive substring of the
// message. apply writes zero or one entries into the patch.
type rule struct {
	field    string
	re       *regexp.Regexp
	keywords []string
	apply    func(m []string, lower string, patch Patch)
}

// Extractor scans form-fill messages with a flat battery of rules.
type Extractor struct {
	rules []rule
}

// Free-text capture tails. The default stops at the next whitespace, so
// multi-word values truncate to their first token.
const (
	singleTokenTail = `(.+?)(?:\s|$)`
	multiWordTail   = `([^.,;]+)`
)

func NewExtractor(opts Options) *Extractor {
	tail := singleTokenTail
	if opts.MultiWord {
		tail = multiWordTail
	}

	freeText := func(field, head string) rule {
		re := regexp.MustCompile(`(?i)` + head + `(?:\s+(?:with|to|as))?\s+` + tail)
		return rule{field: field, re: re, apply: func(m []string, _ string, patch Patch) {
			if m[1] != "" {
				patch[field] = strings.TrimSpace(m[1])
			}
		}}
	}

	return &Extractor{rules: []rule{
		{
			field:    "email",
			re:       regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`),
			keywords: []string{"email", "mail"},
			apply: func(m []string, _ string, patch Patch) {
				patch["email"] = m[0]
			},
		},
		freeText("firstName", `(?:first name|firstname)`),
		freeText("lastName", `(?:last name|lastname)`),
		{
			field:    "dateOfBirth",
			re:       regexp.MustCompile(`(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4})`),
			keywords: []string{"date of birth", "dob", "birthday"},
			apply: func(m []string, _ string, patch Patch) {
				patch["dateOfBirth"] = normalizeDate(m[1])
			},
		},
		{
			field: "age",
			re:    regexp.MustCompile(`(?i)age(?:\s+(?:with|to|as))?\s+(\d+)`),
			apply: func(m []string, _ string, patch Patch) {
				patch["age"] = m[1]
			},
		},
		{
			field:    "phoneNumber",
			re:       regexp.MustCompile(`(\+?\d[\d\s\-()]{8,}\d)`),
			keywords: []string{"phone", "number"},
			apply: func(m []string, lower string, patch Patch) {
				if strings.Contains(lower, "emergency") {
					patch["emergencyContactPhone"] = m[1]
				} else {
					patch["phoneNumber"] = m[1]
				}
			},
		},
		freeText("address", `address`),
		freeText("emergencyContactName", `emergency(?:\s+contact)?\s+name`),
		{
			field: "isUCLAPatient",
			re:    regexp.MustCompile(`(?i)ucla`),
			apply: func(_ []string, lower string, patch Patch) {
				if strings.Contains(lower, "yes") {
					patch["isUCLAPatient"] = "yes"
				} else if strings.Contains(lower, "no") {
					patch["isUCLAPatient"] = "no"
				}
			},
		},
		{
			field: "hospital",
			re:    regexp.MustCompile(`(?i)hospital`),
			apply: func(_ []string, lower string, patch Patch) {
				for _, h := range hospitalAliases {
					if strings.Contains(lower, h.alias) {
						patch["hospital"] = h.code
						return
					}
				}
			},
		},
		freeText("signature", `(?:signature|sign)`),
	}}
}

// hospitalAliases maps spoken hospital names to the canonical short codes
// the consent form stores. Checked in order.
var hospitalAliases = []struct{ alias, code string }{
	{"university college", "uclh"},
	{"uclh", "uclh"},
	{"guys", "guys"},
	{"imperial", "imperial"},
	{"kings", "kings"},
	{"barts", "barts"},
}

// Extract runs every rule against the message and collects all values that
// fire. Rules are independent; a miss simply contributes nothing.
func (e *Extractor) Extract(message string) Patch {
	lower := strings.ToLower(message)
	patch := Patch{}

	for _, r := range e.rules {
		if len(r.keywords) > 0 && !containsAny(lower, r.keywords) {
			continue
		}
		m := r.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		r.apply(m, lower, patch)
	}

	return patch
}

// normalizeDate reorders slash-separated DD/MM/YYYY dates to YYYY-MM-DD.
// Dash-separated dates pass through verbatim.
func normalizeDate(date string) string {
	if !strings.Contains(date, "/") {
		return date
	}
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return date
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], zeroPad(parts[1]), zeroPad(parts[0]))
}

func zeroPad(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

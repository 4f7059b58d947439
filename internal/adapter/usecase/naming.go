package usecase

import (
	"strings"
	"unicode"

	"adpilot/internal/core/domain"
)

// Words of an origin prompt that carry no naming value.
var nameStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "from": {}, "in": {},
	"my": {}, "of": {}, "on": {}, "our": {}, "the": {}, "to": {},
	"want": {}, "with": {}, "i": {}, "need": {}, "some": {}, "new": {},
	"ads": {}, "ad": {}, "campaign": {},
}

var nameSuffixes = []string{"Campaign", "Ads", "Promotion", "Launch"}

// ResolveName returns desired unchanged when it is not taken
// (case-insensitive), otherwise the first candidate derived from the
// origin prompt that is free. Candidates are meaningful paraphrases of
// the prompt, never numeric suffixes, and the derivation is
// deterministic. When every candidate is taken (or no prompt exists to
// derive from) a conflict error is returned; the resolver never loops
// and never fabricates a name.
func ResolveName(desired, originPrompt string, taken map[string]struct{}) (string, error) {
	if _, clash := taken[strings.ToLower(desired)]; !clash {
		return desired, nil
	}
	for _, cand := range nameCandidates(desired, originPrompt) {
		if _, clash := taken[strings.ToLower(cand)]; !clash {
			return cand, nil
		}
	}
	return "", domain.E(domain.CodeConflict, "the name is already taken and no free alternative could be derived")
}

// nameCandidates derives alternative names from the prompt's
// significant words: each keyword paired with a generic suffix, then
// adjacent keyword pairs. The desired name itself is excluded.
func nameCandidates(desired, originPrompt string) []string {
	keywords := promptKeywords(originPrompt)
	seen := map[string]struct{}{strings.ToLower(desired): {}}
	var out []string
	add := func(name string) {
		low := strings.ToLower(name)
		if _, dup := seen[low]; dup {
			return
		}
		seen[low] = struct{}{}
		out = append(out, name)
	}
	for _, kw := range keywords {
		for _, suffix := range nameSuffixes {
			add(kw + " " + suffix)
		}
	}
	for i := 0; i+1 < len(keywords); i++ {
		add(keywords[i] + " " + keywords[i+1])
	}
	return out
}

// promptKeywords extracts the significant words of a prompt in order,
// title-cased and deduplicated.
func promptKeywords(prompt string) []string {
	fields := strings.FieldsFunc(prompt, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		low := strings.ToLower(f)
		if len(low) < 3 {
			continue
		}
		if _, stop := nameStopwords[low]; stop {
			continue
		}
		if _, dup := seen[low]; dup {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, titleWord(low))
	}
	return out
}

func titleWord(w string) string {
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

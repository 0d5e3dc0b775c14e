// Package phone reconciles the many representations of a Malaysian phone
// number. Contacts are keyed by whichever form the office typed in, while
// the chat channel reports senders in international form, so a lookup has
// to try every plausible spelling of the same number.
package phone

import "strings"

const (
	countryCode = "60"
	trunkPrefix = "0"
)

// channel scheme markers seen on inbound sender addresses.
var schemePrefixes = []string{"whatsapp:", "sms:", "tel:"}

// Clean strips the channel scheme and all formatting characters, leaving
// digits and an optional leading "+".
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, p := range schemePrefixes {
		if strings.HasPrefix(lower, p) {
			s = s[len(p):]
			break
		}
	}
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
	return replacer.Replace(s)
}

// Candidates expands a raw sender address into every equivalent national
// representation: as given, +60-international, bare-international and
// 0-trunk forms. The store matches a contact if any candidate equals the
// stored phone.
func Candidates(raw string) []string {
	n := Clean(raw)
	if n == "" {
		return nil
	}

	out := []string{n}
	switch {
	case strings.HasPrefix(n, "+"+countryCode):
		rest := n[len("+"+countryCode):]
		out = append(out, trunkPrefix+rest, n[1:])
	case strings.HasPrefix(n, countryCode):
		rest := n[len(countryCode):]
		out = append(out, trunkPrefix+rest, "+"+n)
	case strings.HasPrefix(n, trunkPrefix):
		rest := n[len(trunkPrefix):]
		out = append(out, "+"+countryCode+rest, countryCode+rest)
	}
	return dedupe(out)
}

// International rewrites a stored number into "+60…" form for outbound
// sends. Numbers already international are returned unchanged.
func International(stored string) string {
	n := Clean(stored)
	switch {
	case strings.HasPrefix(n, "+"):
		return n
	case strings.HasPrefix(n, countryCode):
		return "+" + n
	case strings.HasPrefix(n, trunkPrefix):
		return "+" + countryCode + n[len(trunkPrefix):]
	}
	return n
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

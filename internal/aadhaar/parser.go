package aadhaar

import (
	"regexp"
	"strings"
)

// Patterns for the individual field extractors. Each extractor is
// independent and first-match-wins; none of them backtracks across fields.
var (
	numberRe = regexp.MustCompile(`\b(\d{4}\s\d{4}\s\d{4})\b`)
	vidRe    = regexp.MustCompile(`VID[:\s]*(\d{4}\s\d{4}\s\d{4}\s\d{4})`)

	// A Tamil line immediately followed by a Latin line is the bilingual
	// name block printed on the card.
	bilingualNameRe = regexp.MustCompile(`([\p{Tamil}][\p{Tamil} \t]*)\n([A-Za-z \t'-]+)`)
	latinLineRe     = regexp.MustCompile(`^[A-Za-z\s'-]+$`)

	// Relationship markers separate the holder's name from the guardian's.
	relMarkerSplitRe  = regexp.MustCompile(`(?i)\s*(?:S/O|C/O|W/O|D/O)\s*`)
	trailingInitialRe = regexp.MustCompile(`\s+[CWSD]\s*$`)
	guardianRe        = regexp.MustCompile(`(?i)(S/o|C/o|D/o|W/o)[.:]?\s*([A-Za-z \t'-]+)`)

	dobRe    = regexp.MustCompile(`(?i)(DOB|Date of Birth|D\.O\.B)[:\s]*?(\d{1,2}[-/]\d{1,2}[-/]\d{4})`)
	genderRe = regexp.MustCompile(`(?i)\b(Male|Female|Transgender|M|F|T)\b`)

	addressRe = regexp.MustCompile(`(?is)address[:\s]*(.*?)(?:\nDistrict|\nState|\n\d{6}|\nVID|\nDigitally|$)`)
	// Fragments scrubbed out of the captured address region.
	addrGuardianRe = regexp.MustCompile(`(?i)(S/o|C/o|D/o|W/o)[.:]?\s*[A-Za-z\s'-]+`)
	addrNumberRe   = regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`)
	addrPostOffRe  = regexp.MustCompile(`PO:.*?,`)
	addrLabelRe    = regexp.MustCompile(`(?i)\b(dist|state)\b.*`)

	districtRe = regexp.MustCompile(`(?i)District[:\s]*(.*)`)
	stateRe    = regexp.MustCompile(`(?i)State[:\s]*(.*)`)
	pincodeRe  = regexp.MustCompile(`\b(\d{6})\b`)
	phoneRe    = regexp.MustCompile(`\b(\d{10})\b`)

	newlineRunRe = regexp.MustCompile(`\n+`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

// Boilerplate that must never be mistaken for the holder's name.
var unwantedPhrases = []string{
	"digitally signed by ds unique",
	"identification authority of india",
	"government of india",
	"signature not verified",
}

// Parse extracts Aadhaar card fields from raw document text. It is a total
// function: any input, including garbage, yields a Record with each field
// either extracted or left empty.
func Parse(text string) Record {
	var rec Record

	lines := splitLines(text)

	// The number is stored verbatim whether or not it passes validation;
	// validity is the caller's concern.
	if m := numberRe.FindStringSubmatch(text); m != nil {
		rec.AadhaarNumber = m[1]
	}

	if m := vidRe.FindStringSubmatch(text); m != nil {
		rec.VID = m[1]
	}

	if m := bilingualNameRe.FindStringSubmatch(text); m != nil {
		rec.NameTamil = strings.TrimSpace(m[1])
		rec.Name = cleanName(m[2])
	}
	if rec.Name == "" {
		rec.Name = nameFromLines(lines)
	}

	if m := guardianRe.FindStringSubmatch(text); m != nil {
		rec.GuardianName = strings.TrimSpace(m[2])
	}

	if m := dobRe.FindStringSubmatch(text); m != nil {
		rec.DOB = strings.ReplaceAll(m[2], "-", "/")
	}

	if m := genderRe.FindStringSubmatch(text); m != nil {
		rec.Gender = capitalize(m[1])
	}

	if m := addressRe.FindStringSubmatch(text); m != nil {
		rec.Address = cleanAddress(m[1])
	}

	if m := districtRe.FindStringSubmatch(text); m != nil {
		rec.District = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), ","))
	}

	if m := stateRe.FindStringSubmatch(text); m != nil {
		rec.State = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), ","))
	}

	// Pincode and phone match any standalone 6/10-digit run, first one in
	// document order. Documents with other numeric sequences can misfire
	// here; this mirrors the card layout heuristic and is a known
	// limitation rather than something to disambiguate silently.
	if m := pincodeRe.FindStringSubmatch(text); m != nil {
		rec.Pincode = m[1]
	}
	if m := phoneRe.FindStringSubmatch(text); m != nil {
		rec.Phone = m[1]
	}

	return rec
}

// splitLines returns the trimmed, non-empty lines of text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// nameFromLines scans for the first line that looks like a person's name:
// Latin letters only, more than one word, and none of the issuing-authority
// boilerplate phrases.
func nameFromLines(lines []string) string {
	for _, line := range lines {
		if !latinLineRe.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) < 2 {
			continue
		}
		if containsUnwanted(line) {
			continue
		}
		return cleanName(line)
	}
	return ""
}

func containsUnwanted(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range unwantedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// cleanName drops everything from the first relationship marker onward,
// strips a trailing single relationship initial left behind by OCR, and
// collapses internal whitespace.
func cleanName(s string) string {
	s = relMarkerSplitRe.Split(s, 2)[0]
	s = trailingInitialRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanAddress scrubs guardian clauses, embedded Aadhaar numbers, post
// office fragments and trailing district/state labels out of the captured
// address region, then flattens it to a single line.
func cleanAddress(s string) string {
	s = strings.TrimSpace(s)
	s = addrGuardianRe.ReplaceAllString(s, "")
	s = addrNumberRe.ReplaceAllString(s, "")
	s = addrPostOffRe.ReplaceAllString(s, "")
	s = addrLabelRe.ReplaceAllString(s, "")
	s = newlineRunRe.ReplaceAllString(s, " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

package utils

import (
	"regexp"
	"strings"

	"github.com/jansahayak/aadhaar-extraction-server/dto"
)

// fieldRule is one candidate pattern for a field. Rules for a field are
// tried in order and the first non-empty capture wins; later rules are
// never consulted once one matches.
type fieldRule struct {
	re *regexp.Regexp
}

var (
	reWhitespace = regexp.MustCompile(`\s+`)

	// 12-digit Aadhaar number, optionally grouped 4-4-4 with single spaces.
	reAadhaarNumber = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)

	// DD/MM/YYYY or DD-MM-YYYY. No calendar validation.
	reDOB = regexp.MustCompile(`\b(\d{2}[/-]\d{2}[/-]\d{4})\b`)

	// Whole-word gender tokens, listed-variant case only.
	reGender = regexp.MustCompile(`\b(Male|Female|MALE|FEMALE|M|F)\b`)

	// Cardholder name: a capitalized run ahead of a relationship marker,
	// optionally anchored at a label, the text start, or the issuing
	// header in either script.
	nameRules = []fieldRule{
		{regexp.MustCompile(`(?i)(?:Name|नाम)[\s:]*([A-Z][A-Z\s]{10,40}?)(?:\s+(?:S/O|D/O|W/O|C/O|Son|Daughter))`)},
		{regexp.MustCompile(`(?i)^([A-Z][A-Z\s]{10,40}?)(?:\s+(?:S/O|D/O|W/O|C/O))`)},
		{regexp.MustCompile(`(?is)(?:Government of India|भारत सरकार).{0,200}?([A-Z][A-Z\s]{10,40}?)(?:\s+(?:S/O|D/O))`)},
	}

	// Guardian name: after a relationship marker or a Father label.
	fatherRules = []fieldRule{
		{regexp.MustCompile(`(?i)(?:S/O|D/O|W/O|C/O|Son of|Daughter of)[\s:]*([A-Z][A-Z\s]{10,40}?)(?:\s|$|,|Date|DOB)`)},
		{regexp.MustCompile(`(?i)(?:Father|पिता)[\s:]*([A-Z][A-Z\s]{10,40}?)(?:\s|$|,)`)},
	}

	// Address: after an Address label, up to a 6-digit PIN code or a
	// literal PIN marker, else up to a line break or the end of text.
	addressRules = []fieldRule{
		{regexp.MustCompile(`(?i)(?:Address|पता)[\s:]*([A-Z0-9\s,]{20,200}?)(?:\d{6}|PIN|Pin)`)},
		{regexp.MustCompile(`(?i)(?:Address)[\s:]*([A-Z0-9\s,]{20,200}?)(?:\n|$)`)},
	}

	// Fallback name line: fully capitalized letters and spaces.
	reCapitalizedLine = regexp.MustCompile(`^[A-Z][A-Z\s]{5,40}$`)
)

// ParseAadhaarData applies the ordered pattern rules to raw OCR text
// and returns the structured record. It is a pure function: the same
// text always yields the same record, every field is evaluated
// independently, and an unmatched field is left empty.
func ParseAadhaarData(text string) dto.AadhaarData {
	data := dto.AadhaarData{}
	if text == "" {
		return data
	}

	// Collapse whitespace runs so patterns see one flat line. The name
	// fallback below still needs the original line structure.
	cleanText := strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))

	if m := reAadhaarNumber.FindString(cleanText); m != "" {
		data.IDNumber = strings.Join(strings.Fields(m), " ")
	}

	if m := reDOB.FindStringSubmatch(cleanText); len(m) > 1 {
		data.DateOfBirth = m[1]
	}

	if m := reGender.FindStringSubmatch(cleanText); len(m) > 1 {
		data.Gender = m[1]
	}

	data.Name = firstRuleMatch(nameRules, cleanText)
	data.FatherName = firstRuleMatch(fatherRules, cleanText)
	data.Address = firstRuleMatch(addressRules, cleanText)

	if data.Name == "" {
		data.Name = fallbackNameFromLines(text)
	}

	return data
}

// firstRuleMatch walks the rule list in order and returns the trimmed
// first capture of the first rule that matches.
func firstRuleMatch(rules []fieldRule, text string) string {
	for _, rule := range rules {
		if m := rule.re.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// fallbackNameFromLines scans the first few substantial lines of the
// original text for one that looks like a printed cardholder name,
// skipping the issuing-authority header. Only consulted when every
// primary name rule missed.
func fallbackNameFromLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 5 {
			lines = append(lines, line)
		}
	}
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		if reCapitalizedLine.MatchString(line) &&
			!strings.Contains(line, "GOVERNMENT") &&
			!strings.Contains(line, "INDIA") {
			return line
		}
	}
	return ""
}

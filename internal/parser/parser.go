// Package parser provides synchronous text utilities used by the first
// pipeline stage: normalization, contact-info extraction and section
// segmentation. All functions are pure.
package parser

import (
	"regexp"
	"strings"

	api "github.com/ayushvishnoipro/SkillzoAI-Assignment/api/v1alpha1"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]+`)
	multiLineRe  = regexp.MustCompile(`\n{3,}`)

	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`\b(?:\+\d{1,2}\s?)?(?:\(?\d{3}\)?[\s.-]?)?\d{3}[\s.-]?\d{4}\b`)
	nameRe  = regexp.MustCompile(`[@:/]`)
)

// CleanText normalizes whitespace in raw resume text. Runs of spaces and
// tabs collapse to a single space; three or more newlines collapse to a
// blank line so section boundaries stay visible.
func CleanText(text string) string {
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiLineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ExtractContactInfo pulls basic contact details out of cleaned resume
// text. The name heuristic assumes the first line holds the candidate's
// name when it is short and free of separators.
func ExtractContactInfo(text string) api.ContactInfo {
	info := api.ContactInfo{}

	if m := emailRe.FindString(text); m != "" {
		info.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		info.Phone = m
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 0 {
		candidate := strings.TrimSpace(lines[0])
		if candidate != "" && len(candidate) < 50 && !nameRe.MatchString(candidate) {
			info.Name = candidate
		}
	}

	return info
}

var sectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(WORK\s+EXPERIENCE|EXPERIENCE|EMPLOYMENT|PROFESSIONAL\s+EXPERIENCE)\b`),
	regexp.MustCompile(`(?i)\b(EDUCATION|ACADEMIC\s+BACKGROUND|QUALIFICATIONS)\b`),
	regexp.MustCompile(`(?i)\b(SKILLS|TECHNICAL\s+SKILLS|COMPETENCIES)\b`),
	regexp.MustCompile(`(?i)\b(PROJECTS)\b`),
	regexp.MustCompile(`(?i)\b(CERTIFICATIONS|CERTIFICATES)\b`),
	regexp.MustCompile(`(?i)\b(LANGUAGES)\b`),
	regexp.MustCompile(`(?i)\b(PUBLICATIONS)\b`),
	regexp.MustCompile(`(?i)\b(INTERESTS|HOBBIES)\b`),
}

// ExtractSections splits the resume into named sections keyed by their
// header line. Text before the first recognized header lands under
// "HEADER".
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string)
	currentSection := "HEADER"
	var content []string

	for _, line := range strings.Split(text, "\n") {
		isHeader := false
		for _, pattern := range sectionPatterns {
			if pattern.MatchString(line) {
				sections[currentSection] = strings.TrimSpace(strings.Join(content, "\n"))
				currentSection = strings.TrimSpace(line)
				content = content[:0]
				isHeader = true
				break
			}
		}
		if !isHeader {
			content = append(content, line)
		}
	}

	if currentSection != "" && len(content) > 0 {
		sections[currentSection] = strings.TrimSpace(strings.Join(content, "\n"))
	}

	return sections
}

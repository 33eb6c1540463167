// Package ngword matches message text against administrator-maintained NG
// keywords.
//
// Matching is a case-insensitive substring test over content and subject.
// There is no tokenization or word-boundary check, so a keyword also matches
// inside a longer word. Tightening this changes which messages get flagged.
package ngword

import (
	"strings"

	"recruit_messaging/internal/domain"
)

// Matcher holds a keyword set lowered once for repeated scans.
type Matcher struct {
	keywords []keyword
}

type keyword struct {
	original string
	lowered  string
}

// NewMatcher builds a matcher from active keywords. Inactive and blank
// entries are skipped, duplicates (ignoring case) are kept once.
func NewMatcher(keywords []*domain.NGKeyword) *Matcher {
	m := &Matcher{keywords: make([]keyword, 0, len(keywords))}
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if k == nil || !k.IsActive {
			continue
		}
		text := strings.TrimSpace(k.Keyword)
		if text == "" {
			continue
		}
		lowered := strings.ToLower(text)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		m.keywords = append(m.keywords, keyword{original: text, lowered: lowered})
	}
	return m
}

func (m *Matcher) Empty() bool {
	return len(m.keywords) == 0
}

// Len is the number of distinct keywords the matcher checks.
func (m *Matcher) Len() int {
	return len(m.keywords)
}

// Match returns every keyword found in content or subject, in registry order
// and original casing. nil means no match.
func (m *Matcher) Match(content, subject string) []string {
	if m.Empty() {
		return nil
	}
	haystack := strings.ToLower(content) + " " + strings.ToLower(subject)
	var matched []string
	for _, k := range m.keywords {
		if strings.Contains(haystack, k.lowered) {
			matched = append(matched, k.original)
		}
	}
	return matched
}

// Scan returns the candidates that contain at least one keyword, keeping
// their input order and current status.
func (m *Matcher) Scan(candidates []*domain.ScanCandidate) []*domain.FlaggedMessage {
	if m.Empty() {
		return nil
	}
	var flagged []*domain.FlaggedMessage
	for _, c := range candidates {
		if c == nil || c.Message == nil {
			continue
		}
		matched := m.Match(c.Message.Content, c.Message.SubjectText())
		if len(matched) == 0 {
			continue
		}
		status := c.Status
		if status == "" {
			status = domain.ApprovalStatusUnhandled
		}
		flagged = append(flagged, &domain.FlaggedMessage{
			Message:         c.Message,
			MatchedKeywords: matched,
			Status:          status,
		})
	}
	return flagged
}

// ScanMessages is the one-shot form of NewMatcher(keywords).Scan(...).
func ScanMessages(candidates []*domain.ScanCandidate, keywords []*domain.NGKeyword) []*domain.FlaggedMessage {
	return NewMatcher(keywords).Scan(candidates)
}

package kometa

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// dateTokens maps format tokens to their rendering. Tokens must be
// substituted longest-first so "mmmm" is never half-consumed by "mm".
var dateTokens = map[string]func(t time.Time) string{
	"mmmm": func(t time.Time) string { return t.Month().String() },
	"mmm":  func(t time.Time) string { return t.Month().String()[:3] },
	"mm":   func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) },
	"m":    func(t time.Time) string { return fmt.Sprintf("%d", int(t.Month())) },
	"dddd": func(t time.Time) string { return t.Weekday().String() },
	"ddd":  func(t time.Time) string { return t.Weekday().String()[:3] },
	"dd":   func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) },
	"d":    func(t time.Time) string { return fmt.Sprintf("%d", t.Day()) },
	"yyyy": func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) },
	"yyy":  func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) },
	"yy":   func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) },
	"y":    func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) },
}

// sortedTokens holds the token list ordered longest-first. The ordering
// is computed, not hand-maintained, because it is load-bearing.
var sortedTokens = func() []string {
	tokens := make([]string, 0, len(dateTokens))
	for token := range dateTokens {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}()

// formatDate renders an ISO calendar date through the token
// mini-language. Substitution runs in two passes through opaque
// placeholders so a rendered value can never collide with an
// unprocessed token. An unparsable date fails soft: the error is
// logged and the original string returned unchanged.
func (s *Synthesizer) formatDate(isoDate, pattern string, capitalize bool) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		s.logger.WithError(err).WithField("date", isoDate).Error("Invalid date, using unformatted value")
		return isoDate
	}

	// Pass 1: tokens -> placeholders
	temp := pattern
	replacements := make(map[string]string)
	for i, token := range sortedTokens {
		if !strings.Contains(temp, token) {
			continue
		}
		marker := fmt.Sprintf("@@%d@@", i)
		replacements[marker] = dateTokens[token](t)
		temp = strings.ReplaceAll(temp, token, marker)
	}

	// Pass 2: placeholders -> rendered values
	result := temp
	for marker, value := range replacements {
		result = strings.ReplaceAll(result, marker, value)
	}

	if capitalize {
		result = strings.ToUpper(result)
	}
	return result
}

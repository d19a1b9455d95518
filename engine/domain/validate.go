package domain

import "strings"

// ValidateAlertInput validates the inputs for a new keyword alert.
func ValidateAlertInput(keywords, communities []string) error {
	if len(trimAll(keywords)) == 0 {
		return NewValidationError("keywords", strings.Join(keywords, ","), ErrNoKeywords)
	}
	if len(trimAll(communities)) == 0 {
		return NewValidationError("communities", strings.Join(communities, ","), ErrNoCommunities)
	}
	return nil
}

// ValidateScanInput validates community list, sort, and window options.
func ValidateScanInput(communities []string, sort Sort, window string) error {
	if len(trimAll(communities)) == 0 {
		return NewValidationError("communities", "", ErrNoCommunities)
	}
	if !ValidSorts[sort] {
		return NewValidationError("sort", string(sort), ErrUnknownSort)
	}
	if window != "" && !ValidWindows[window] {
		return NewValidationError("window", window, ErrUnknownWindow)
	}
	return nil
}

// ValidateScheduledInput validates inputs for a new scheduled post.
func ValidateScheduledInput(community, title string) error {
	if strings.TrimSpace(community) == "" {
		return NewValidationError("community", community, ErrNoCommunities)
	}
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", title, ErrEmptyTitle)
	}
	return nil
}

// trimAll returns the non-empty trimmed entries.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

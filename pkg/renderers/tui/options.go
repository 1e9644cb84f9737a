package tui

// Theme captures the prefixes used when printing messages.
type Theme struct {
	ErrorPrefix string
	RetryPrompt string
}

func defaultTheme() Theme {
	return Theme{
		ErrorPrefix: "✖ ",
		RetryPrompt: "Try again?",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme overrides message prefixes. Empty fields keep their defaults.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		if theme.ErrorPrefix != "" {
			s.theme.ErrorPrefix = theme.ErrorPrefix
		}
		if theme.RetryPrompt != "" {
			s.theme.RetryPrompt = theme.RetryPrompt
		}
	}
}

// WithMaxRounds bounds how many times the session re-prompts failing fields
// before giving up. Zero means unbounded.
func WithMaxRounds(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxRounds = n
		}
	}
}

// WithPageSize sets how many select options are shown at once.
func WithPageSize(n int) Option {
	return func(s *Session) {
		s.pageSize = n
	}
}

// WithFields limits and orders the fields asked on the first round. Every name
// must have a schema entry; fields that later fail validation are always asked
// again.
func WithFields(names ...string) Option {
	return func(s *Session) {
		s.fields = append([]string(nil), names...)
	}
}

package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// bearerPattern matches bearer-style credentials that could leak through
// notifier daemon request logging.
var bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

// DefaultRedactOptions returns the default masq options for secret redaction.
// The notifier daemon client is the only outbound surface, but settings
// values pass through logs too, so the common credential field names stay on
// the list.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}

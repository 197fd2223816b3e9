package llm

import "context"

type purposeKey struct{}

// PurposeExplain tags answer explanation requests in the request log.
const PurposeExplain = "explain"

const purposeUnknown = "unknown"

// WithPurpose tags ctx so LoggingProvider can record why a request was
// made. An empty purpose leaves ctx untouched.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return purposeUnknown
}

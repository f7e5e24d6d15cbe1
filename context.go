package riotauth

import "context"

type auditLabelContextKey struct{}

// WithAuditLabel attaches an operator-supplied label to ctx. The Engine
// copies it onto every audit event emitted during calls made with that
// context, which lets multi-account callers tell runs apart in one sink.
func WithAuditLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, auditLabelContextKey{}, label)
}

func auditLabelFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	label, _ := ctx.Value(auditLabelContextKey{}).(string)
	return label
}

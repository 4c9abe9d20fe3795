package service

import (
	"fmt"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
)

// authorize evaluates the action, records the decision, and converts a deny
// into domain.ErrForbidden carrying the rule's reason.
func authorize(p domain.Principal, a authz.Action) error {
	decision := authz.Evaluate(p, a)

	outcome := "allow"
	if !decision.Allowed {
		outcome = "deny"
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(a.ResourceKind, outcome).Inc()

	if !decision.Allowed {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, decision.Reason)
	}
	return nil
}

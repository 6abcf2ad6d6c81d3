// Package errors provides the structured error type shared by every layer of petbot.
//
// An *Error carries a Code, a message safe to show in logs, an optional Cause,
// and free-form metadata:
//
//	err := errors.NotFoundf("player %d not found", playerID).
//	    WithMeta("chat_id", chatID)
//
// Wrapping keeps the original code so callers can branch on it:
//
//	if err := repo.WithPlayers(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to run feed transaction")
//	}
//
// # Rejections and faults
//
// Codes split into two families. Rejections (InvalidArgument, NotFound,
// ResourceExhausted, FailedPrecondition, ...) describe a request the player can
// correct and are turned into an outcome for the chat. Everything else is a fault:
// it is logged and reported as a generic failure. Use IsRejection to tell them apart.
//
// Aborted marks an optimistic transaction that lost every retry; Code.Retryable
// reports it together with Unavailable.
//
// # Validation
//
// Component configs validate themselves with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	errors.ValidateRange("quotas.feed_per_day", r.Quotas.FeedPerDay, 0, 100, vb)
//	return vb.Build()
package errors

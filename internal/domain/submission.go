package domain

import "context"

// SubmissionResult is the user-facing outcome of handing an order or
// wishlist to the sink. Message is shown verbatim to the buyer, so sinks
// phrase it for humans, not logs.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmissionSink delivers finalized orders and wishlists to the store's
// back office. A sink never returns an error: every failure mode collapses
// into an unsuccessful SubmissionResult so callers have one code path.
type SubmissionSink interface {
	SubmitOrder(ctx context.Context, order OrderSubmission) SubmissionResult
	SubmitWishlist(ctx context.Context, wishlist WishlistSubmission) SubmissionResult
}

package ap

import "errors"

var (
	// ErrStreamOrder reports a row stream that violates the contiguous
	// vendor-grouping precondition. The fold would otherwise silently build
	// two separate vendor groups for the same vendor.
	ErrStreamOrder = errors.New("row stream out of order")

	// ErrUnclassifiableInvoice reports an invoice whose status code is not
	// one of the defined statuses.
	ErrUnclassifiableInvoice = errors.New("unclassifiable invoice status")
)

package analysis

import (
	"errors"
	"fmt"

	"github.com/rhpds/showroom-tool/llm"
)

// Sentinel errors for the analysis stage. Callers branch on these with
// errors.Is to decide retry and exit behavior.
var (
	// ErrSchemaFieldMissingDescription indicates a field catalog entry
	// without a behavioral description. This is a programming error and
	// is checked at startup, not per request.
	ErrSchemaFieldMissingDescription = errors.New("schema field missing description")

	// ErrModelUnavailable indicates the backend could not be reached or
	// refused our credentials. Retrying later may succeed.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrMalformedResponse indicates the model answered but its output
	// failed schema validation. Retrying the same prompt will not help.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRequestRejected indicates a provider-side refusal for policy
	// reasons.
	ErrRequestRejected = errors.New("request rejected")
)

// classifyInvokeError maps transport-layer failures onto the analysis
// error taxonomy. Refusals become rejections; every other transport
// failure (network, timeout, rate limit, auth) means the model was not
// available to us.
func classifyInvokeError(err error) error {
	if llm.IsRefusal(err) {
		return fmt.Errorf("%w: %v", ErrRequestRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
}

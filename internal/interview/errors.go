package interview

import "github.com/myrjola/deepinsight/internal/errors"

// ErrGenerationFailed signals that the text-generation gateway either
// returned an error or produced output that no extraction strategy could
// turn into usable text. It lets callers distinguish "the model didn't
// cooperate" from a data bug.
var ErrGenerationFailed = errors.NewSentinel("interview: text generation failed")

package hashwires

import goerrors "github.com/go-errors/errors"

// Kind identifies one member of HashWires's closed error taxonomy
// (spec.md §7). No other kind of error leaves this package.
type Kind int

const (
	// UnsupportedBase: base outside {2,4,16,256}.
	UnsupportedBase Kind = iota
	// InvalidBitWidth: n zero, negative, or not divisible by log2(b).
	InvalidBitWidth
	// InvalidSeedLength: seed is not 32 bytes.
	InvalidSeedLength
	// InvalidValue: a negative value was supplied.
	InvalidValue
	// ValueExceedsMaxBits: v >= b^k.
	ValueExceedsMaxBits
	// ThresholdExceedsValue: t > v.
	ThresholdExceedsValue
	// ThresholdTooLarge: t >= b^k.
	ThresholdTooLarge
	// MalformedCommitment: Commitment deserialization failed.
	MalformedCommitment
	// MalformedProof: Proof deserialization failed.
	MalformedProof
	// VerificationFailed: SMT inclusion or plug mismatch on verify.
	VerificationFailed
	// HashFailure: the injected hash primitive reported an error.
	HashFailure
)

func (k Kind) String() string {
	switch k {
	case UnsupportedBase:
		return "unsupported base"
	case InvalidBitWidth:
		return "invalid bit width"
	case InvalidSeedLength:
		return "invalid seed length"
	case InvalidValue:
		return "invalid value"
	case ValueExceedsMaxBits:
		return "value exceeds max bits"
	case ThresholdExceedsValue:
		return "threshold exceeds value"
	case ThresholdTooLarge:
		return "threshold too large"
	case MalformedCommitment:
		return "malformed commitment"
	case MalformedProof:
		return "malformed proof"
	case VerificationFailed:
		return "verification failed"
	case HashFailure:
		return "hash failure"
	default:
		return "unknown error"
	}
}

// Error is the single error type returned from every fallible operation
// in this package. Kind is always one of the taxonomy constants above;
// Cause, when set, is the lower-level error that triggered it, stored
// as-is (no stack trace is attached to it).
type Error struct {
	Kind  Kind
	msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.Kind.String() + ": " + e.msg
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, hashwires.ErrThresholdExceedsValue) and
// similar sentinels.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// wrapError records cause as Unwrap's target directly (so callers can
// keep using errors.Is/errors.As through it) and appends cause's message
// to msg. The message is taken from a github.com/go-errors/errors wrap of
// cause; only its text is kept, so the stack trace that wrap captures is
// discarded.
func wrapError(kind Kind, msg string, cause error) *Error {
	stacked := goerrors.Wrap(cause, 1)
	return &Error{Kind: kind, msg: msg + ": " + stacked.Error(), Cause: cause}
}

// Sentinel values for errors.Is comparisons against a Kind, e.g.
// errors.Is(err, hashwires.ErrThresholdExceedsValue).
var (
	ErrUnsupportedBase        = &Error{Kind: UnsupportedBase}
	ErrInvalidBitWidth        = &Error{Kind: InvalidBitWidth}
	ErrInvalidSeedLength      = &Error{Kind: InvalidSeedLength}
	ErrInvalidValue           = &Error{Kind: InvalidValue}
	ErrValueExceedsMaxBits    = &Error{Kind: ValueExceedsMaxBits}
	ErrThresholdExceedsValue  = &Error{Kind: ThresholdExceedsValue}
	ErrThresholdTooLarge      = &Error{Kind: ThresholdTooLarge}
	ErrMalformedCommitment    = &Error{Kind: MalformedCommitment}
	ErrMalformedProof         = &Error{Kind: MalformedProof}
	ErrVerificationFailed     = &Error{Kind: VerificationFailed}
	ErrHashFailure            = &Error{Kind: HashFailure}
)

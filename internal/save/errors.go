package save

import "errors"

// Structural decode/encode failures. All are terminal for the current
// operation; callers get them wrapped with the field or record being
// processed at the time of failure.
var (
	ErrHeaderMismatch     = errors.New("header mismatch")
	ErrFooterMismatch     = errors.New("footer mismatch")
	ErrUnsupportedVersion = errors.New("unsupported save format version")
	ErrUnsupportedType    = errors.New("unsupported save type")
	ErrUnexpectedEOF      = errors.New("unexpected end of save data")
	ErrInvalidCount       = errors.New("negative count or length")
	ErrInvalidText        = errors.New("text is not valid UTF-8")
	ErrUnknownPegType     = errors.New("unknown peg type")
	ErrMissingTypeMapping = errors.New("component type missing from dictionary")
)

package css

// Error is the engine's closed set of result codes. It is grounded on
// libcss's css_error enum (include/libcss/errors.h) and is returned from
// every public operation instead of an ad-hoc error value, so callers can
// switch on it exhaustively.
type Error int

const (
	// Ok indicates success. The zero value so a freshly zeroed Error reads
	// as success, matching the C enum's CSS_OK == 0.
	Ok Error = iota
	// NoMem indicates the allocator refused a request. It is kept so the
	// set stays closed; no operation in this package returns it, and an
	// allocation failure surfaces as the Go runtime's own panic.
	NoMem
	// BadParam indicates the caller violated the operation's contract
	// (nil inputs, wrong state). Unconditionally aborts the operation.
	BadParam
	// Invalid indicates the input didn't match the grammar at the current
	// cursor. Recoverable: the caller drops the offending declaration or
	// rule and continues.
	Invalid
	// FileNotFound indicates an @import target could not be resolved by
	// the host.
	FileNotFound
	// NeedData is not an error but a protocol marker: streaming input is
	// incomplete and append_data should be called again with more bytes.
	NeedData
	// BadCharset indicates the byte stream declares or implies a charset
	// the decoder can't handle.
	BadCharset
	// Eof indicates an unexpected end of the token vector inside a
	// grammar production.
	Eof
)

func (e Error) String() string {
	switch e {
	case Ok:
		return "ok"
	case NoMem:
		return "no memory"
	case BadParam:
		return "bad parameter"
	case Invalid:
		return "invalid"
	case FileNotFound:
		return "file not found"
	case NeedData:
		return "need data"
	case BadCharset:
		return "bad charset"
	case Eof:
		return "unexpected eof"
	default:
		return "unknown error"
	}
}

// Error implements the error interface so an Error can be returned
// wherever idiomatic Go wants an `error`, while still letting callers
// type-assert back to css.Error for exhaustive switches.
func (e Error) Error() string {
	return "css: " + e.String()
}

// ErrorFromString parses the canonical name of an Error, the inverse of
// String. Mirrors css_error_from_string from the original library, used
// by the test harness CLI to read expectations from text fixtures.
func ErrorFromString(s string) (Error, bool) {
	switch s {
	case "ok":
		return Ok, true
	case "no memory":
		return NoMem, true
	case "bad parameter":
		return BadParam, true
	case "invalid":
		return Invalid, true
	case "file not found":
		return FileNotFound, true
	case "need data":
		return NeedData, true
	case "bad charset":
		return BadCharset, true
	case "unexpected eof":
		return Eof, true
	default:
		return Ok, false
	}
}

package http

const (
	CodeInvalidJSON     = "INVALID_JSON"
	CodeRequestTooLarge = "REQUEST_TOO_LARGE"
	CodeNotReady        = "NOT_READY"
	CodeInternal        = "INTERNAL_ERROR"
)

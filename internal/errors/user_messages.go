package errors

// User-friendly error messages
const (
	MsgCityRequired       = "City name is required"
	MsgCityNotFound       = "City not found"
	MsgFetchFailed        = "Failed to fetch projects"
	MsgServiceUnavailable = "Service temporarily unavailable. Please try again in a few minutes."
	MsgRateLimited        = "You're searching too quickly! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)

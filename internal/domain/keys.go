package domain

// KeyRequestID is the gin context key holding the request ID
const KeyRequestID = "RequestID"

// HeaderRequestID carries the request ID on requests and responses
const HeaderRequestID = "X-Request-ID"

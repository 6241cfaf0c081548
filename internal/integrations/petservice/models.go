package petservice

// Pet is the slice of the pet profile this service reads: only the
// identity matters to scheduling.
type Pet struct {
	ID int64 `json:"id"`
}

// ErrorResponse is the error payload of the pet service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package commons

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func Message(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// ErrorResponse builds an error body. detail is only meant to be passed in
// development mode.
func ErrorResponse(message string, detail ...string) ErrorBody {
	body := ErrorBody{Message: message}
	if len(detail) > 0 {
		body.Error = detail[0]
	}
	return body
}

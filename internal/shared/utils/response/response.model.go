package response

// ApiResponse is the single envelope every endpoint returns. Field names are
// kept camelCase for compatibility with existing clients.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     interface{} `json:"errors,omitempty"`
}

package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

// CORSHeaders is the fixed header set attached to every intake response.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Headers returns a fresh copy of the response headers, CORS included.
func Headers() map[string]string {
	h := make(map[string]string, len(CORSHeaders)+1)
	for k, v := range CORSHeaders {
		h[k] = v
	}
	h["Content-Type"] = "application/json"
	return h
}

// JSON builds an API Gateway proxy response with the given status and body.
// If encoding fails, a 500 error is returned instead.
func JSON(status int, data any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("response encode failed", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    Headers(),
		Body:       string(body),
	}
}

// OK builds a 200 response.
func OK(data any) events.APIGatewayProxyResponse {
	return JSON(http.StatusOK, data)
}

// Error builds a JSON error response.
func Error(status int, message string) events.APIGatewayProxyResponse {
	return JSON(status, ErrorResponse{Error: message})
}

// BadRequest builds a 400 error.
func BadRequest(message string) events.APIGatewayProxyResponse {
	return Error(http.StatusBadRequest, message)
}

// InternalError builds a 500 error carrying the error text.
func InternalError(err error) events.APIGatewayProxyResponse {
	return Error(http.StatusInternalServerError, err.Error())
}

// Write copies a proxy response onto a net/http ResponseWriter.
func Write(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		logger.Warn("response write failed", "error", err)
	}
}

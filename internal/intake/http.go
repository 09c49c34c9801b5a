package intake

import (
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/pkg/httputil"
)

// maxBodyBytes caps request bodies on the net/http path. API Gateway enforces
// its own payload limit in front of the Lambda.
const maxBodyBytes = 1 << 20

// ServeHTTP lets the handler run behind a plain net/http server by mapping the
// request onto the API Gateway proxy shape.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		httputil.Write(w, httputil.InternalError(err))
		return
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	req := events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Headers:    headers,
		Body:       string(body),
	}

	resp, _ := h.Handle(r.Context(), req)
	httputil.Write(w, resp)
}

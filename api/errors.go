package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

// CodePayloadTooLarge is returned when the body exceeds the size limit
const CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

type errorDetail struct {
	Code     string                `json:"code"`
	Message  string                `json:"message"`
	Problems []errors.FieldProblem `json:"problems,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// writeError maps err onto the error body and status code
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	detail := errorDetail{Code: string(errors.TypeInternal), Message: "internal error"}

	var tooLarge *http.MaxBytesError
	var verr *errors.ValidationError
	var derr *errors.Error
	var ierr *errors.InternalComputationError

	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		detail = errorDetail{Code: CodePayloadTooLarge, Message: err.Error()}
	case errors.As(err, &verr):
		detail = errorDetail{Code: string(verr.Code()), Message: "request failed validation", Problems: verr.Problems}
	case errors.As(err, &ierr):
		// defect details stay in the log
	case errors.As(err, &derr) && status < http.StatusInternalServerError:
		detail = errorDetail{Code: string(derr.Type), Message: derr.Message}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("estimate failed",
			zap.String("request_id", requestID(r)),
			zap.Error(err),
		)
	}

	// error responses are never cacheable
	w.Header().Del("ETag")
	w.Header().Set("Cache-Control", "no-store")
	s.writeJSON(w, errorBody{Error: detail}, status)
}

package normalize

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

// DecodeRequest reads one JSON estimate request from r. Malformed JSON is a
// TypeInput error; a value of the wrong JSON type is reported as a
// validation problem on the offending field.
func DecodeRequest(r io.Reader) (*types.EstimateRequest, error) {
	dec := json.NewDecoder(r)

	var req types.EstimateRequest
	if err := dec.Decode(&req); err != nil {
		return nil, decodeError(err)
	}
	if dec.More() {
		return nil, errors.New(errors.TypeInput, "request body must contain a single JSON object")
	}
	return &req, nil
}

func decodeError(err error) error {
	if stderrors.Is(err, io.EOF) {
		return errors.New(errors.TypeInput, "request body is empty")
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		verr := &errors.ValidationError{}
		verr.Add(field, fmt.Sprintf("must be %s, got %s", describeKind(typeErr.Type.Kind().String()), typeErr.Value))
		return verr
	}

	return errors.Wrap(errors.TypeInput, "request body is not valid JSON", err)
}

func describeKind(kind string) string {
	switch kind {
	case "int", "int64":
		return "an integer"
	case "float64":
		return "a number"
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	case "slice":
		return "a list"
	case "struct", "ptr":
		return "an object"
	default:
		return kind
	}
}

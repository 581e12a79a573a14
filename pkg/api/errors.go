package api

import (
	"encoding/json"
	"net/http"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      cerrors.Code `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
}

// writeError classifies err and writes it with the matching status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = pipeline.ClassifyError(err)
	code := cerrors.GetCode(err)
	writeJSON(w, cerrors.HTTPStatus(code), errorBody{Error: errorDetail{
		Code:      code,
		Message:   cerrors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func errNotFound(path string) error {
	return cerrors.New(cerrors.ErrCodeNotFound, "no route for %s", path)
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

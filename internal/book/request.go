package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"bookcatalog/internal/httpx"
)

const (
	msgNotJSON   = "Content-type must be application/json"
	msgNotObject = "Request body must be a JSON object"
)

// ErrBodyTooLarge is returned when the body exceeds the server's size limit.
var ErrBodyTooLarge = errors.New("request body too large")

// requiredFields is also the order missing fields are reported in.
var requiredFields = []string{"title", "author", "year"}

type createBookRequest struct {
	Title  *string `json:"title" validate:"required,min=1"`
	Author *string `json:"author" validate:"required,min=1"`
	Year   *int    `json:"year" validate:"required,gte=1000,lte=2100"`
}

type updateBookRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Author *string `json:"author" validate:"omitempty,min=1"`
	Year   *int    `json:"year" validate:"omitempty,gte=1000,lte=2100"`
}

func (req updateBookRequest) patch() Patch {
	return Patch{Title: req.Title, Author: req.Author, Year: req.Year}
}

// decodeCreate reads a POST body. Missing fields are reported before
// malformed ones, the way clients of this API expect.
func decodeCreate(r *http.Request) (Book, error) {
	body, _, err := readObject(r)
	if err != nil {
		return Book{}, err
	}

	var req createBookRequest
	typeErr := unmarshalTyped(body, &req)

	fieldErrs, err := httpx.ValidateStruct(req)
	if err != nil {
		return Book{}, err
	}

	var missing []string
	for _, name := range requiredFields {
		if typeErr != nil && typeErr.Field == name {
			continue
		}
		for _, fe := range fieldErrs {
			if fe.Field == name && fe.Tag == "required" {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return Book{}, invalidf("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if typeErr != nil {
		return Book{}, invalidf("Invalid %s provided", typeErr.Field)
	}
	if len(fieldErrs) > 0 {
		return Book{}, invalidf("Invalid %s provided", fieldErrs[0].Field)
	}

	return Book{Title: *req.Title, Author: *req.Author, Year: *req.Year}, nil
}

// decodeUpdate reads a PUT body. Every key must be one of requiredFields.
func decodeUpdate(r *http.Request) (Patch, error) {
	body, keys, err := readObject(r)
	if err != nil {
		return Patch{}, err
	}

	sort.Strings(keys)
	for _, k := range keys {
		if !isBookField(k) {
			return Patch{}, invalidf("Invalid field: %s", k)
		}
	}

	var req updateBookRequest
	if typeErr := unmarshalTyped(body, &req); typeErr != nil {
		return Patch{}, invalidf("Invalid %s provided", typeErr.Field)
	}
	fieldErrs, err := httpx.ValidateStruct(req)
	if err != nil {
		return Patch{}, err
	}
	if len(fieldErrs) > 0 {
		return Patch{}, invalidf("Invalid %s provided", fieldErrs[0].Field)
	}
	return req.patch(), nil
}

// readObject checks the media type and returns the raw body together with
// the keys of the top-level JSON object.
func readObject(r *http.Request) ([]byte, []string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || (mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json")) {
		return nil, nil, &ValidationError{Message: msgNotJSON}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, ErrBodyTooLarge
		}
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, nil, &ValidationError{Message: msgNotObject}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return body, keys, nil
}

// unmarshalTyped decodes body into dst and returns the first field whose
// JSON type did not fit. The body is known to be a valid object.
func unmarshalTyped(body []byte, dst any) *json.UnmarshalTypeError {
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(body, dst); errors.As(err, &typeErr) {
		return typeErr
	}
	return nil
}

func isBookField(name string) bool {
	for _, f := range requiredFields {
		if f == name {
			return true
		}
	}
	return false
}

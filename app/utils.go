package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/velvetkeys/inkpost/internal/postservice"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	json, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(json)

	return nil
}

func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("request body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("request body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("request body contains an invalid value for the %q field", unmarshalTypeError.Field)
			}
			return fmt.Errorf("request body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("request body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("request body contains unknown field %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("request body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}
	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON value")
	}
	return nil
}

func (app *application) readIDParam(r *http.Request, key string) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id := params.ByName(key)
	if id == "" {
		return "", errors.New("invalid ID parameter")
	}

	return id, nil
}

// maxPostFormBytes bounds a create/update request: the 1 MB content cap
// plus headroom for the other fields and multipart framing.
const maxPostFormBytes = 2 << 20

// readPostForm accepts either a JSON body or a multipart form with the
// markdown as an uploaded "file" field or an inline "content" field.
func (app *application) readPostForm(w http.ResponseWriter, r *http.Request) (*postservice.CreatePostRequest, error) {
	contentType := r.Header.Get("Content-Type")

	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var input postservice.CreatePostRequest
		if err := app.parseJSON(w, r, &input); err != nil {
			return nil, err
		}
		return &input, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPostFormBytes)

	if err := r.ParseMultipartForm(maxPostFormBytes); err != nil {
		return nil, errors.New("could not parse multipart form")
	}

	input := &postservice.CreatePostRequest{
		Title:      r.FormValue("title"),
		Author:     r.FormValue("author"),
		Excerpt:    r.FormValue("excerpt"),
		CoverImage: r.FormValue("coverImage"),
		Content:    r.FormValue("content"),
	}

	file, _, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return nil, errors.New("could not read uploaded file")
		}
		input.Content = string(content)
	}

	return input, nil
}

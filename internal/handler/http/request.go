package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	maxJSONBytes    = 1 << 20
	maxUploadBytes  = 64 << 20
	multipartMemory = 8 << 20

	// payloadField carries nested structures of a multipart request as one
	// JSON document.
	payloadField = "payload"
)

// requestBody is a decoded request: the JSON document the schema was read
// from and, for multipart requests, the files spooled to the upload dir.
type requestBody struct {
	raw     []byte
	uploads models.Uploads
	spooled []string
}

// cleanup removes every spooled file the media adapter has not consumed.
// It must be deferred by every handler that reads a multipart request.
func (b *requestBody) cleanup(ctx context.Context) {
	for _, path := range b.spooled {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*requestBody.cleanup").Str("path", path).Msg("failed to remove spooled upload")
		}
	}
}

// readRequest decodes the request into dst and spools the files of
// fileFields.
//
// JSON requests are decoded as is; an empty body reads as "{}". Multipart
// requests are decoded from the "payload" field when it is set and from the
// plain form fields otherwise, see [formToJSON]. dst may be nil when only the
// raw document is needed.
func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request, dst any, fileFields ...string) (*requestBody, error) {
	body := &requestBody{uploads: models.Uploads{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return body, ErrUploadTooLarge
			}
			return body, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		if err := h.spool(r.MultipartForm, body, fileFields); err != nil {
			return body, err
		}

		if payload := r.MultipartForm.Value[payloadField]; len(payload) > 0 {
			body.raw = []byte(payload[0])
		} else {
			raw, err := formToJSON(r.MultipartForm.Value, dst)
			if err != nil {
				return body, err
			}
			body.raw = raw
		}
	} else {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBytes))
		if err != nil {
			return body, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		body.raw = raw
	}

	if len(bytes.TrimSpace(body.raw)) == 0 {
		body.raw = []byte("{}")
	}

	if dst != nil {
		if err := json.Unmarshal(body.raw, dst); err != nil {
			return body, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	}

	return body, nil
}

// decodeJSON reads a JSON body into dst.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	_, err := h.readRequest(w, r, dst)
	return err
}

// spool copies the files of fields into the upload dir.
func (h *Handler) spool(form *multipart.Form, body *requestBody, fields []string) error {
	if len(fields) == 0 || len(form.File) == 0 {
		return nil
	}
	if err := os.MkdirAll(h.uploadDir, 0o750); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	for _, field := range fields {
		for _, header := range form.File[field] {
			file, err := spoolFile(h.uploadDir, header)
			if err != nil {
				return err
			}
			body.spooled = append(body.spooled, file.Path)
			body.uploads[field] = append(body.uploads[field], file)
		}
	}
	return nil
}

func spoolFile(dir string, header *multipart.FileHeader) (models.UploadedFile, error) {
	src, err := header.Open()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to open upload %q: %w", header.Filename, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to create spool file: %w", err)
	}

	size, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if err = errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dst.Name())
		return models.UploadedFile{}, fmt.Errorf("failed to spool upload %q: %w", header.Filename, err)
	}

	return models.UploadedFile{Path: dst.Name(), Filename: header.Filename, Size: size}, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// formToJSON turns flat form fields into a JSON object shaped after the
// top-level fields of dst. Strings and decimals are quoted, numbers and
// booleans are checked and written bare, anything else is expected to
// already be JSON. Fields dst does not declare are dropped.
func formToJSON(values map[string][]string, dst any) ([]byte, error) {
	if dst == nil {
		return []byte("{}"), nil
	}

	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: form target is %s", ErrInvalidBody, t.Kind())
	}

	doc := make(map[string]json.RawMessage)
	var verr validators.ValidationError

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		value := strings.TrimSpace(vals[0])

		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		switch {
		case ft == decimalType || ft.Kind() == reflect.String:
			quoted, _ := json.Marshal(value)
			doc[name] = quoted
		case ft.Kind() == reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				verr.Fields = append(verr.Fields, validators.FieldError{Field: name, Rule: "boolean"})
				continue
			}
			doc[name] = json.RawMessage(strconv.FormatBool(b))
		case isNumberKind(ft.Kind()):
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				verr.Fields = append(verr.Fields, validators.FieldError{Field: name, Rule: "number"})
				continue
			}
			doc[name] = json.RawMessage(value)
		default:
			if !json.Valid([]byte(value)) {
				verr.Fields = append(verr.Fields, validators.FieldError{Field: name, Rule: "json"})
				continue
			}
			doc[name] = json.RawMessage(value)
		}
	}

	if len(verr.Fields) > 0 {
		return nil, &verr
	}
	return json.Marshal(doc)
}

func jsonName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// intParam reads a numeric path parameter.
func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidPathParam, name, err)
	}
	return value, nil
}

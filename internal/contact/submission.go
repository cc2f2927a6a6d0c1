// Package contact relays contact-form submissions by mail.
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// File fields accepted for the attachment, in lookup order.
var fileFields = []string{"resume", "file"}

var (
	// ErrSpam reports a filled honeypot field.
	ErrSpam = errors.New("contact: honeypot filled")
	// ErrMissingFields reports an empty name, email or message.
	ErrMissingFields = errors.New("contact: missing required fields")
	// ErrInvalidEmail reports a malformed submitter address.
	ErrInvalidEmail = errors.New("contact: invalid email")
	// ErrTooLarge reports a body above the upload limit.
	ErrTooLarge = errors.New("contact: payload too large")
)

// Submission is one contact form post, trimmed.
type Submission struct {
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	Gotcha     string
	Attachment *Attachment
}

// Attachment is an uploaded file.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseSubmission reads the request body: JSON when the content type says so, form fields
// otherwise (urlencoded or multipart with an optional file). A body that cannot be
// decoded yields an empty submission; only ErrTooLarge is returned as an error.
func ParseSubmission(r *http.Request, maxUpload int64) (Submission, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return parseJSON(r.Body)
	}
	return parseForm(r, maxUpload)
}

func parseJSON(body io.Reader) (Submission, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		if isTooLarge(err) {
			return Submission{}, ErrTooLarge
		}
		return Submission{}, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Submission{}, nil
	}
	return Submission{
		Name:    jsonString(data["name"]),
		Email:   jsonString(data["email"]),
		Phone:   jsonString(data["phone"]),
		Subject: jsonString(data["subject"]),
		Message: jsonString(data["message"]),
		Gotcha:  honeypotValue(data["_gotcha"]),
	}, nil
}

// honeypotValue keeps the honeypot untrimmed. Only null, "" and empty arrays or objects
// count as unfilled; any other value is carried as its JSON text.
func honeypotValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
	case map[string]any:
		if len(t) == 0 {
			return ""
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "filled"
	}
	return string(raw)
}

// jsonString renders scalar JSON values as form fields would carry them.
func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
	}
	return ""
}

func parseForm(r *http.Request, maxUpload int64) (Submission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxUpload)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		if isTooLarge(err) {
			return Submission{}, ErrTooLarge
		}
		return Submission{}, nil
	}

	sub := Submission{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
		Gotcha:  r.PostFormValue("_gotcha"),
	}
	if r.MultipartForm != nil {
		att, err := readAttachment(r, maxUpload)
		if err != nil {
			return Submission{}, err
		}
		sub.Attachment = att
	}
	return sub, nil
}

func readAttachment(r *http.Request, maxUpload int64) (*Attachment, error) {
	for _, field := range fileFields {
		files := r.MultipartForm.File[field]
		if len(files) == 0 || files[0].Filename == "" {
			continue
		}
		fh := files[0]
		if maxUpload > 0 && fh.Size > maxUpload {
			return nil, ErrTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			if isTooLarge(err) {
				return nil, ErrTooLarge
			}
			return nil, nil
		}
		return &Attachment{
			Filename:    SanitizeFilename(fh.Filename),
			ContentType: http.DetectContentType(data),
			Data:        data,
		}, nil
	}
	return nil, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, ErrTooLarge)
}

// Validate checks, in order, the honeypot, the required fields and the email address.
func (s Submission) Validate() error {
	if s.Gotcha != "" {
		return ErrSpam
	}
	if s.Name == "" || s.Email == "" || s.Message == "" {
		return ErrMissingFields
	}
	if !ValidEmail(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidEmail reports whether email is a bare ASCII address (no display name, no brackets)
// whose domain is a dotted hostname.
func ValidEmail(email string) bool {
	for i := 0; i < len(email); i++ {
		if email[i] >= utf8.RuneSelf {
			return false
		}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at > 64 {
		return false
	}
	labels := strings.Split(email[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}
	return true
}

// validLabel accepts one hostname label: letters, digits and inner hyphens.
func validLabel(label string) bool {
	if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}

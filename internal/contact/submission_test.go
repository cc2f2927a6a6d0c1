package contact

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func TestParseJSON(t *testing.T) {
	sub, err := ParseSubmission(jsonRequest(`{"name":"  Ana ","email":"ana@example.com","phone":31999,"message":"Oi\n","_gotcha":""}`), DefaultMaxUpload)
	require.NoError(t, err)
	require.Equal(t, Submission{Name: "Ana", Email: "ana@example.com", Phone: "31999", Message: "Oi"}, sub)
}

func TestParseInvalidJSONIsEmpty(t *testing.T) {
	sub, err := ParseSubmission(jsonRequest(`{"name":`), DefaultMaxUpload)
	require.NoError(t, err)
	require.Equal(t, Submission{}, sub)
	require.ErrorIs(t, sub.Validate(), ErrMissingFields)

	sub, err = ParseSubmission(jsonRequest(`["not","an","object"]`), DefaultMaxUpload)
	require.NoError(t, err)
	require.Equal(t, Submission{}, sub)
}

func TestParseURLEncoded(t *testing.T) {
	form := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Olá"}, "subject": {" Orçamento "}}
	r := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sub, err := ParseSubmission(r, DefaultMaxUpload)
	require.NoError(t, err)
	require.Equal(t, "Orçamento", sub.Subject)
	require.Nil(t, sub.Attachment)
	require.NoError(t, sub.Validate())
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/send", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestParseMultipartWithFile(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%...")
	r := multipartRequest(t, map[string]string{"name": "Ana", "email": "ana@example.com", "message": "cv"},
		"resume", "meu currículo (final).pdf", pdf)

	sub, err := ParseSubmission(r, DefaultMaxUpload)
	require.NoError(t, err)
	require.NotNil(t, sub.Attachment)
	require.Equal(t, "meu_curr_culo__final_.pdf", sub.Attachment.Filename)
	require.Equal(t, "application/pdf", sub.Attachment.ContentType)
	require.Equal(t, pdf, sub.Attachment.Data)
}

func TestParseMultipartFileAlias(t *testing.T) {
	r := multipartRequest(t, map[string]string{"name": "Ana"}, "file", "a.txt", []byte("hello"))
	sub, err := ParseSubmission(r, DefaultMaxUpload)
	require.NoError(t, err)
	require.NotNil(t, sub.Attachment)
	require.Equal(t, "a.txt", sub.Attachment.Filename)
	require.Equal(t, "text/plain; charset=utf-8", sub.Attachment.ContentType)
}

func TestParseMultipartFileTooLarge(t *testing.T) {
	r := multipartRequest(t, map[string]string{"name": "Ana"}, "resume", "big.bin", bytes.Repeat([]byte("x"), 2048))
	_, err := ParseSubmission(r, 1024)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestValidateOrder(t *testing.T) {
	valid := Submission{Name: "Ana", Email: "ana@example.com", Message: "Oi"}
	require.NoError(t, valid.Validate())

	spam := Submission{Gotcha: "bot"}
	require.ErrorIs(t, spam.Validate(), ErrSpam)
	spam = valid
	spam.Gotcha = "x"
	require.ErrorIs(t, spam.Validate(), ErrSpam)

	missing := valid
	missing.Message = ""
	require.ErrorIs(t, missing.Validate(), ErrMissingFields)

	bad := valid
	bad.Email = "not-an-email"
	require.ErrorIs(t, bad.Validate(), ErrInvalidEmail)
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"ana@example.com", "a.b+c@mail.example.com.br", "o-k@sub-domain.example.com"} {
		require.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"not-an-email", "ana@localhost", "Ana <ana@example.com>", "<ana@example.com>", "ana@example.com\r\nBcc: x@y.z", "ana@.com", "ana@example.",
		"josé@example.com", "ana@exämple.com", "a@-x.com", "a@x-.com", "a@ex_ample.com", "a@example..com"} {
		require.False(t, ValidEmail(bad), bad)
	}
}

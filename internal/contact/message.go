package contact

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// DefaultSubject is used when the submission has no subject.
	DefaultSubject = "Novo contato do site"
	subjectPrefix  = "Contato: "
	heading        = "Novo contato do site"
	base64LineLen  = 76
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-] with "_".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "attachment"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Sender is the fixed addressing of relayed mail.
type Sender struct {
	To       []string
	From     string
	FromName string
}

// Message is a composed mail ready for a Mailer.
type Message struct {
	From       string
	FromName   string
	To         []string
	ReplyTo    string
	Subject    string
	HTML       string
	Attachment *Attachment
	Date       time.Time
}

// Compose builds the mail for a validated submission.
func Compose(sub Submission, sender Sender, now time.Time) Message {
	subject := DefaultSubject
	if sub.Subject != "" {
		subject = subjectPrefix + sub.Subject
	}
	var b strings.Builder
	b.WriteString("<h2>" + heading + "</h2>")
	writeField(&b, "Nome", sub.Name)
	writeField(&b, "E-mail", sub.Email)
	writeField(&b, "Telefone", sub.Phone)
	writeField(&b, "Assunto", subject)
	b.WriteString("<p><strong>Mensagem:</strong></p>")
	b.WriteString("<p>" + nl2br(html.EscapeString(sub.Message)) + "</p>")

	to := make([]string, len(sender.To))
	copy(to, sender.To)
	return Message{
		From:       sender.From,
		FromName:   sender.FromName,
		To:         to,
		ReplyTo:    sub.Email,
		Subject:    subject,
		HTML:       b.String(),
		Attachment: sub.Attachment,
		Date:       now,
	}
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString("<p><strong>" + label + ":</strong> " + html.EscapeString(value) + "</p>")
}

var newlines = strings.NewReplacer("\r\n", "<br />\r\n", "\n", "<br />\n", "\r", "<br />\r")

func nl2br(s string) string {
	return newlines.Replace(s)
}

// Bytes renders the message in RFC 5322 form. Without an attachment the body is a
// single quoted-printable HTML part; with one it is multipart/mixed holding exactly the
// HTML part and the base64 attachment.
func (m Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo implements io.WriterTo.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	from := (&mail.Address{Name: m.FromName, Address: m.From}).String()
	headers := [][2]string{
		{"MIME-Version", "1.0"},
		{"Date", m.Date.Format(time.RFC1123Z)},
		{"From", from},
		{"To", strings.Join(m.To, ", ")},
	}
	if m.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", m.ReplyTo})
	}
	headers = append(headers, [2]string{"Subject", mime.QEncoding.Encode("utf-8", m.Subject)})

	if m.Attachment == nil {
		headers = append(headers,
			[2]string{"Content-Type", "text/html; charset=UTF-8"},
			[2]string{"Content-Transfer-Encoding", "quoted-printable"},
		)
		writeHeaders(cw, headers)
		if err := writeQuotedPrintable(cw, m.HTML); err != nil {
			return cw.n, err
		}
		return cw.n, cw.err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	headers = append(headers, [2]string{"Content-Type", `multipart/mixed; boundary="` + mw.Boundary() + `"`})
	writeHeaders(cw, headers)

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return cw.n, err
	}
	if err := writeQuotedPrintable(htmlPart, m.HTML); err != nil {
		return cw.n, err
	}

	att := m.Attachment
	name := SanitizeFilename(att.Filename)
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filePart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(mediaTypeOnly(contentType), map[string]string{"name": name})},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": name})},
	})
	if err != nil {
		return cw.n, err
	}
	if err := writeBase64Lines(filePart, att.Data); err != nil {
		return cw.n, err
	}
	if err := mw.Close(); err != nil {
		return cw.n, err
	}
	_, _ = cw.Write(body.Bytes())
	return cw.n, cw.err
}

func mediaTypeOnly(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}

func writeHeaders(w io.Writer, headers [][2]string) {
	for _, h := range headers {
		fmt.Fprintf(w, "%s: %s\r\n", h[0], h[1])
	}
	io.WriteString(w, "\r\n")
}

func writeQuotedPrintable(w io.Writer, s string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := io.WriteString(qp, s); err != nil {
		return err
	}
	return qp.Close()
}

func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > base64LineLen {
		if _, err := io.WriteString(w, enc[:base64LineLen]+"\r\n"); err != nil {
			return err
		}
		enc = enc[base64LineLen:]
	}
	_, err := io.WriteString(w, enc+"\r\n")
	return err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

package mail

import (
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
)

// Message is a single-recipient HTML email.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// BuildMIME renders msg in RFC 2822 format. Header values have line breaks
// removed so user-supplied text cannot inject headers.
func BuildMIME(msg *Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("message is required")
	}
	if msg.To == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if msg.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	var b strings.Builder

	if msg.From != "" {
		b.WriteString("From: ")
		b.WriteString(headerValue(msg.From))
		b.WriteString("\r\n")
	}

	b.WriteString("To: ")
	b.WriteString(headerValue(msg.To))
	b.WriteString("\r\n")

	// Subject may contain non-ASCII characters
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(headerValue(msg.Subject)))
	b.WriteString("\r\n")

	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	b.WriteString("\r\n")

	// Body lines stay within the SMTP line limit and 7-bit safe
	qp := quotedprintable.NewWriter(&b)
	if _, err := qp.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}

	return []byte(b.String()), nil
}

func headerValue(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}

// encodeRFC2047 encodes a header value according to RFC 2047 when it
// contains non-ASCII characters.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

package gmail

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"golang.org/x/text/unicode/norm"
	"google.golang.org/api/gmail/v1"

	"go.withmatt.com/triage/internal/log"
)

const (
	mimeTextPlain = "text/plain"

	// maxPartDepth bounds the part tree walk. Provider payloads are never
	// cyclic, but a hostile or corrupt tree should not recurse forever.
	maxPartDepth = 32
)

// HeaderLookup resolves header values by name.
type HeaderLookup []*gmail.MessagePartHeader

// Headers returns the top-level header lookup for a message.
func Headers(msg *gmail.Message) HeaderLookup {
	if msg == nil || msg.Payload == nil {
		return nil
	}
	return HeaderLookup(msg.Payload.Headers)
}

// Get returns the value of the first header whose name matches name
// case-insensitively, or "" if there is none.
func (h HeaderLookup) Get(name string) string {
	for _, header := range h {
		if header != nil && strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// Text returns the header value with RFC 2047 encoded words decoded.
// Values that fail to decode are returned as-is.
func (h HeaderLookup) Text(name string) string {
	raw := h.Get(name)
	if raw == "" {
		return ""
	}
	var mh mail.Header
	mh.Set(name, raw)
	text, err := mh.Text(name)
	if err != nil {
		return raw
	}
	return norm.NFC.String(text)
}

// Date parses the Date header. The zero time is returned when the header is
// missing or unparseable, so undated messages order as the earliest.
func (h HeaderLookup) Date() time.Time {
	raw := h.Get("Date")
	if raw == "" {
		return time.Time{}
	}
	var mh mail.Header
	mh.Set("Date", raw)
	date, err := mh.Date()
	if err != nil {
		log.Printf("unparseable Date header %q: %v", raw, err)
		return time.Time{}
	}
	return date
}

// DecodeBody extracts the plain-text body of a message payload.
//
// Inline data on the payload itself wins. Otherwise every text/plain leaf
// with data is decoded and concatenated in depth-first order. Leaves that
// fail to decode are skipped.
func DecodeBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		text, err := decodePartText(payload)
		if err != nil {
			log.Printf("skipping undecodable payload body part=%q: %v", payload.PartId, err)
			return ""
		}
		return text
	}

	var b strings.Builder
	appendPlainTextParts(&b, payload.Parts, 1)
	return b.String()
}

func appendPlainTextParts(b *strings.Builder, parts []*gmail.MessagePart, depth int) {
	if depth > maxPartDepth {
		log.Printf("part tree deeper than %d, ignoring remainder", maxPartDepth)
		return
	}
	for _, part := range parts {
		if part == nil {
			continue
		}
		if part.MimeType == mimeTextPlain && part.Body != nil && part.Body.Data != "" {
			text, err := decodePartText(part)
			if err != nil {
				log.Printf("skipping undecodable text part=%q: %v", part.PartId, err)
				continue
			}
			b.WriteString(text)
			continue
		}
		if len(part.Parts) > 0 {
			appendPlainTextParts(b, part.Parts, depth+1)
		}
	}
}

func decodePartText(part *gmail.MessagePart) (string, error) {
	data, err := DecodeData(part.Body.Data)
	if err != nil {
		return "", err
	}
	data = toUTF8(data, partCharset(part))
	return norm.NFC.String(string(data)), nil
}

// DecodeData decodes base64url body data. The URL-safe alphabet is mapped
// back to the standard one and missing padding is tolerated.
func DecodeData(data string) ([]byte, error) {
	std := strings.Map(func(r rune) rune {
		switch r {
		case '-':
			return '+'
		case '_':
			return '/'
		case ' ', '\t', '\r', '\n', '\f':
			return -1
		default:
			return r
		}
	}, data)
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(std, "="))
}

func partCharset(part *gmail.MessagePart) string {
	contentType := HeaderLookup(part.Headers).Get("Content-Type")
	if contentType == "" {
		return ""
	}
	var mh mail.Header
	mh.Set("Content-Type", contentType)
	_, params, err := mh.ContentType()
	if err != nil {
		return ""
	}
	return params["charset"]
}

func toUTF8(data []byte, name string) []byte {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return data
	}
	r, err := charset.Reader(name, bytes.NewReader(data))
	if err != nil {
		log.Printf("unknown charset %q, keeping raw bytes: %v", name, err)
		return data
	}
	converted, err := io.ReadAll(r)
	if err != nil {
		log.Printf("charset %q conversion failed, keeping raw bytes: %v", name, err)
		return data
	}
	return converted
}

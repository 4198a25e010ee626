// Package xmlutils provides the XML sanitization, validation, and query
// helpers shared by the attachment pipeline and the field codec.
package xmlutils

import (
	"strings"

	"fjacquet/facturx-edit/internal/logging"
)

var log = logging.GetLogger()

// SetLogger replaces the package logger.
func SetLogger(l logging.Logger) {
	if l != nil {
		log = l
	}
}

// leadingJunk lists the characters some producing systems emit before the
// XML prolog: the byte-order mark plus ordinary whitespace and line breaks.
const leadingJunk = "\uFEFF \t\r\n"

// Sanitize normalizes raw attachment bytes into content a strict parser
// accepts. It decodes lossily as UTF-8 (undecodable bytes become U+FFFD),
// strips any leading BOM and whitespace preceding the first '<', and
// re-encodes as UTF-8. Sanitize is pure and idempotent.
func Sanitize(raw []byte) []byte {
	txt := strings.ToValidUTF8(string(raw), "�")
	txt = strings.TrimLeft(txt, leadingJunk)
	if len(txt) != len(raw) {
		log.Debug("sanitized attachment bytes",
			logging.F("bytes_in", len(raw)), logging.F("bytes_out", len(txt)))
	}
	return []byte(txt)
}

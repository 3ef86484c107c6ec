package render

import (
	"io"
	"strings"
)

// textEscaper covers text nodes. Quotes only matter inside attributes.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// attrEscaper covers double-quoted attribute values. Hook configs are JSON,
// so quotes and any whitespace inside them are encoded.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

func writeText(w io.Writer, s string) error {
	_, err := textEscaper.WriteString(w, s)
	return err
}

func writeAttr(w io.Writer, key, value string) error {
	if _, err := io.WriteString(w, " "+key+`="`); err != nil {
		return err
	}
	if _, err := attrEscaper.WriteString(w, value); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}

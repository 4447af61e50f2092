package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func rgb(c [3]uint8) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

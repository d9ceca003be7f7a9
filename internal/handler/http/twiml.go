package handler

import "strings"

const twimlContentType = "text/xml"

var twimlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// twimlResponse wraps a reply in the messaging response document the telephony gateway expects
func twimlResponse(message string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Message>` + twimlEscaper.Replace(message) + `</Message>
</Response>`)
}

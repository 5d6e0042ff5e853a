package msgconv

import (
	"encoding/xml"
	"strings"

	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

// ToXML renders wire elements as the pseudo-XML fragment used for
// raw_message. Text is escaped; rich elements become self-closing tags.
func ToXML(msgs []*onebot.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		switch m.Type {
		case "text":
			xml.EscapeText(&b, []byte(m.Data["text"]))
		case "at":
			b.WriteString(`<at qq="`)
			xml.EscapeText(&b, []byte(m.Data["qq"]))
			b.WriteString(`"/>`)
		case "face":
			b.WriteString(`<face id="`)
			xml.EscapeText(&b, []byte(m.Data["id"]))
			b.WriteString(`"/>`)
		case "image":
			b.WriteString(`<image url="`)
			xml.EscapeText(&b, []byte(m.Data["url"]))
			b.WriteString(`"/>`)
		}
	}
	return b.String()
}

// FromXML parses a pseudo-XML fragment back into wire elements. The parse is
// permissive: the fragment is wrapped in a synthetic root, malformed trailing
// input is dropped, and unknown tags are ignored.
func FromXML(s string) []*onebot.Message {
	dec := xml.NewDecoder(strings.NewReader("<a>" + s + "</a>"))
	dec.Strict = false
	dec.AutoClose = []string{"at", "face", "image"}

	var out []*onebot.Message
	for {
		tok, err := dec.Token()
		if err != nil {
			// EOF, or malformed input past this point. Either way keep
			// what parsed cleanly.
			return out
		}
		switch tok := tok.(type) {
		case xml.CharData:
			text := string(tok)
			if text == "" {
				continue
			}
			out = append(out, &onebot.Message{Type: "text", Data: map[string]string{"text": text}})
		case xml.StartElement:
			switch tok.Name.Local {
			case "a":
				// Synthetic root.
			case "at":
				out = append(out, &onebot.Message{Type: "at", Data: attrMap(tok, "qq", "display")})
			case "face":
				out = append(out, &onebot.Message{Type: "face", Data: attrMap(tok, "id")})
			case "image":
				out = append(out, &onebot.Message{Type: "image", Data: attrMap(tok, "url", "cache")})
			}
		}
	}
}

func attrMap(tok xml.StartElement, keys ...string) map[string]string {
	data := make(map[string]string)
	for _, attr := range tok.Attr {
		for _, k := range keys {
			if attr.Name.Local == k {
				data[k] = attr.Value
			}
		}
	}
	return data
}

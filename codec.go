package payu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// xmlListItems names the XML elements PayU uses as list entries. A parent
// holding only such children decodes as a JSON array even with one entry.
var xmlListItems = map[string]bool{
	"paymentMethodComplete": true,
	"bank":                  true,
	"creditCardToken":       true,
	"recurringBillItem":     true,
	"recurringBill":         true,
	"transaction":           true,
}

// decodeBody parses a response body into out according to its content type.
// JSON is decoded directly. XML is converted to the equivalent JSON document
// first so the same struct tags apply. An empty or plain text body leaves out
// untouched.
func decodeBody(contentType string, body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return json.Unmarshal(trimmed, out)
	case strings.Contains(ct, "xml"), trimmed[0] == '<':
		converted, err := xmlToJSON(trimmed)
		if err != nil {
			return err
		}
		return json.Unmarshal(converted, out)
	case trimmed[0] == '{' || trimmed[0] == '[':
		return json.Unmarshal(trimmed, out)
	default:
		// Plain text replies are only available through APIResponse.Body.
		return nil
	}
}

// xmlToJSON converts a PayU XML document into JSON.
func xmlToJSON(body []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xml document has no root element")
	}
	return json.Marshal(xmlValue(root))
}

func xmlValue(el *etree.Element) any {
	children := el.ChildElements()
	if len(children) == 0 {
		// Leaves stay strings; the target types decide how to read them.
		return strings.TrimSpace(el.Text())
	}

	if isXMLList(children) {
		items := make([]any, 0, len(children))
		for _, c := range children {
			items = append(items, xmlValue(c))
		}
		return items
	}

	obj := make(map[string]any, len(children))
	for _, c := range children {
		v := xmlValue(c)
		if s, ok := v.(string); ok && s == "" {
			// Empty elements stand for absent values.
			continue
		}
		switch existing := obj[c.Tag].(type) {
		case nil:
			obj[c.Tag] = v
		case []any:
			obj[c.Tag] = append(existing, v)
		default:
			obj[c.Tag] = []any{existing, v}
		}
	}
	return obj
}

func isXMLList(children []*etree.Element) bool {
	tag := children[0].Tag
	for _, c := range children[1:] {
		if c.Tag != tag {
			return false
		}
	}
	return len(children) > 1 || xmlListItems[tag]
}

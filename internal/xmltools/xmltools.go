// Package xmltools extracts metadata from Akoma Ntoso judgment XML and from
// MarkLogic search responses.
//
// Every lookup matches on namespace URI and local name, never on the prefix a
// document happens to use. Required fields return an error when absent;
// optional fields return a (value, ok) pair and never fail.
package xmltools

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespaces used by judgment documents and the document store.
const (
	NamespaceAKN    = "http://docs.oasis-open.org/legaldocml/ns/akn/3.0"
	NamespaceUK     = "https://caselaw.nationalarchives.gov.uk/akn"
	NamespaceSearch = "http://marklogic.com/appservices/search"
	NamespaceProp   = "http://marklogic.com/xdmp/property"
)

// Parse reads an XML document and returns its root element.
func Parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse xml: document has no root element")
	}
	return root, nil
}

// -----------------------------------------------------------------------------
// Element lookups
// -----------------------------------------------------------------------------

// Is reports whether el is the element {ns}local.
func Is(el *etree.Element, ns, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == ns
}

// FindChild returns the first direct child {ns}local of el.
func FindChild(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			return c
		}
	}
	return nil
}

// FindChildren returns every direct child {ns}local of el in document order.
func FindChildren(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// FindDescendant returns the first descendant {ns}local of el in document
// order, excluding el itself.
func FindDescendant(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			return c
		}
		if found := FindDescendant(c, ns, local); found != nil {
			return found
		}
	}
	return nil
}

// FindChildText returns the trimmed text of the first child {ns}local of el.
// Absent and empty elements both report ok=false.
func FindChildText(el *etree.Element, ns, local string) (string, bool) {
	return nonEmpty(FlattenText(FindChild(el, ns, local)))
}

// Attr returns the trimmed value of an attribute. Absent and empty attributes
// both report ok=false.
func Attr(el *etree.Element, key string) (string, bool) {
	if el == nil {
		return "", false
	}
	a := el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return nonEmpty(a.Value)
}

// FlattenText concatenates all character data under el, dropping inner markup,
// and collapses runs of whitespace to single spaces.
func FlattenText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	collectText(el, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(el *etree.Element, b *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(t, b)
		}
	}
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// -----------------------------------------------------------------------------
// Judgment metadata
// -----------------------------------------------------------------------------

// GetMetadataNameElement returns the akn:FRBRname element of a judgment's
// identification block.
func GetMetadataNameElement(root *etree.Element, uri string) (*etree.Element, error) {
	identification := FindDescendant(FindDescendant(root, NamespaceAKN, "meta"), NamespaceAKN, "identification")
	name := FindDescendant(identification, NamespaceAKN, "FRBRname")
	if name == nil {
		return nil, &MissingMetadataError{URI: uri, Field: "FRBRname"}
	}
	return name, nil
}

// GetMetadataNameValue returns the value attribute of the judgment's FRBRname.
func GetMetadataNameValue(root *etree.Element, uri string) (string, error) {
	el, err := GetMetadataNameElement(root, uri)
	if err != nil {
		return "", err
	}
	value, ok := Attr(el, "value")
	if !ok {
		return "", &MissingMetadataError{URI: uri, Field: "FRBRname/@value"}
	}
	return value, nil
}

// FindNeutralCitation returns the text of the first akn:neutralCitation.
func FindNeutralCitation(root *etree.Element) (string, bool) {
	return nonEmpty(FlattenText(FindDescendant(root, NamespaceAKN, "neutralCitation")))
}

// GetNeutralCitation is FindNeutralCitation for documents that must carry one.
func GetNeutralCitation(root *etree.Element, uri string) (string, error) {
	citation, ok := FindNeutralCitation(root)
	if !ok {
		return "", &MissingMetadataError{URI: uri, Field: "neutralCitation"}
	}
	return citation, nil
}

// FindFRBRDate returns the date attribute of the akn:FRBRdate child of el
// whose name attribute equals name (for example "decision" or "transform").
func FindFRBRDate(el *etree.Element, name string) (string, bool) {
	for _, d := range FindChildren(el, NamespaceAKN, "FRBRdate") {
		if n, _ := Attr(d, "name"); n == name {
			return Attr(d, "date")
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Search responses
// -----------------------------------------------------------------------------

// GetSearchTotal returns the raw total attribute of a search:response root.
// The caller parses it.
func GetSearchTotal(root *etree.Element) (string, bool) {
	if !Is(root, NamespaceSearch, "response") {
		return "", false
	}
	return Attr(root, "total")
}

// GetSearchResults returns the search:result fragments of a response in order.
func GetSearchResults(root *etree.Element) []*etree.Element {
	return FindChildren(root, NamespaceSearch, "result")
}

// GetSearchMatches returns the flattened text of every search:match in the
// hit's snippet, in order. Empty matches are dropped.
func GetSearchMatches(hit *etree.Element) []string {
	var matches []string
	for _, snippet := range FindChildren(hit, NamespaceSearch, "snippet") {
		for _, m := range FindChildren(snippet, NamespaceSearch, "match") {
			if text := FlattenText(m); text != "" {
				matches = append(matches, text)
			}
		}
	}
	return matches
}

// GetPropertyValue returns the text of a property in a MarkLogic properties
// document. The name is matched on local name under any namespace, since
// custom properties carry their own.
func GetPropertyValue(root *etree.Element, name string) (string, bool) {
	if root == nil {
		return "", false
	}
	for _, c := range root.ChildElements() {
		if c.Tag == name {
			return nonEmpty(FlattenText(c))
		}
		if v, ok := GetPropertyValue(c, name); ok {
			return v, true
		}
	}
	return "", false
}

package marklogic

import "strings"

// recognisedExtensions are stripped from store paths and request paths.
var recognisedExtensions = []string{".xml", ".html", ".pdf"}

// DocumentURI is a bare document identifier such as "ewca/civ/2004/632":
// no leading slash, no extension. The store path is derived from it exactly
// once, by StorePath.
type DocumentURI string

// ParseDocumentURI normalises a store path or request path into a bare
// identifier. It strips one leading slash and one trailing recognised
// extension, so "/ukut/lc/2022/241.xml" becomes "ukut/lc/2022/241".
// Only one extension is removed: "a.xml.xml" becomes "a.xml", and parsing
// that again gives "a". Repeated parsing is stable for identifiers that do
// not themselves end in a recognised extension.
func ParseDocumentURI(path string) DocumentURI {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "/")
	for _, ext := range recognisedExtensions {
		if strings.HasSuffix(path, ext) {
			path = strings.TrimSuffix(path, ext)
			break
		}
	}
	return DocumentURI(path)
}

// StorePath is the path of the document inside the document store.
func (u DocumentURI) StorePath() string {
	return "/" + string(u) + ".xml"
}

// Underscored is the identifier with slashes replaced, used in file names.
func (u DocumentURI) Underscored() string {
	return strings.ReplaceAll(string(u), "/", "_")
}

// IsPressSummary reports whether the identifier names a press summary.
func (u DocumentURI) IsPressSummary() bool {
	return strings.Contains(string(u), "/press-summary/")
}

func (u DocumentURI) String() string {
	return string(u)
}

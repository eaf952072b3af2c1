package rec2pdf

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// assetAttr names the attribute that carries a file reference per element.
// Scripts are never rewritten; media elements are pointless in print output.
var assetAttr = map[string]string{
	"img":  "src",
	"link": "href",
	"a":    "href",
}

// RewriteAssetPaths resolves relative asset references in rendered markup
// to absolute file:// URLs anchored at baseDir, normally the template's
// directory. The document is printed from a temporary file, so
// template-relative logos and stylesheets would otherwise dangle.
// References that are already URLs, data: URIs, mailto: links, anchors or
// absolute paths stay untouched, as does anything that resolves outside
// baseDir. An empty baseDir skips rewriting entirely.
func RewriteAssetPaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving template directory: %w", err)
	}

	root, fragment, err := parseMarkup(htmlContent)
	if err != nil {
		return "", fmt.Errorf("parsing rendered markup: %w", err)
	}

	walkAssets(root, absBase)

	var buf strings.Builder
	if fragment {
		// Render the children directly to avoid an <html><body> wrapper.
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseMarkup parses a full document or a bare fragment. Fragments are
// parsed in body context and collected under a synthetic document node.
func parseMarkup(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func walkAssets(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		if attr, ok := assetAttr[n.Data]; ok {
			rewriteAssetAttr(n, attr, baseDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkAssets(c, baseDir)
	}
}

func rewriteAssetAttr(n *html.Node, name, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != name || !isRelativeAsset(attr.Val) {
			continue
		}
		abs := filepath.Join(baseDir, attr.Val)
		if !withinDir(abs, baseDir) {
			continue
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		n.Attr[i].Val = u.String()
	}
}

// isRelativeAsset reports whether val is a plain relative path rather than
// a URL, data: URI, anchor or absolute path.
func isRelativeAsset(val string) bool {
	switch {
	case val == "":
		return false
	case strings.HasPrefix(val, "#"):
		return false
	case strings.HasPrefix(val, "//"):
		return false
	case filepath.IsAbs(val):
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:"} {
		if strings.HasPrefix(val, prefix) {
			return false
		}
	}
	return true
}

// withinDir reports whether path stays inside dir after cleaning.
func withinDir(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

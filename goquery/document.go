// Package goquery extracts profile fields from HTML pages using CSS
// selectors (goquery) and XPath queries (htmlquery) over a single parse tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Document is a parsed profile page. CSS and XPath queries run against
// the same node tree.
type Document struct {
	root *html.Node
	doc  *goquery.Document
}

// ParseDocument parses an HTML body.
func ParseDocument(body string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}, nil
}

// Find returns the elements matching a CSS selector in document order.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// XPath evaluates an XPath expression. Invalid expressions return an error.
func (d *Document) XPath(expr string) ([]*html.Node, error) {
	return htmlquery.QueryAll(d.root, expr)
}

// nodeText returns the trimmed text content of n.
// Text nodes yield their own data; comments are ignored.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// isBlank reports whether n is a whitespace-only text node or a comment.
func isBlank(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	}
	return false
}

// nextNonBlank returns the first sibling after n that carries content.
func nextNonBlank(n *html.Node) *html.Node {
	next := n.NextSibling
	for next != nil && isBlank(next) {
		next = next.NextSibling
	}
	return next
}

// following returns the first element after n in document order that
// matches sel. Descendants of n are not considered.
func following(n *html.Node, sel cascadia.Selector) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.NextSibling; sib != nil; sib = sib.NextSibling {
			if found := firstMatch(sib, sel); found != nil {
				return found
			}
		}
	}
	return nil
}

// firstMatch returns n or its first descendant matching sel, in pre-order.
func firstMatch(n *html.Node, sel cascadia.Selector) *html.Node {
	if n.Type == html.ElementNode && sel.Match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstMatch(c, sel); found != nil {
			return found
		}
	}
	return nil
}

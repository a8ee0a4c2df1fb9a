package readability

import (
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// removeNodes iterates over a NodeList, calls `filterFn` for each node
// and removes node if function returned `true`. If function is not
// passed, removes all the nodes in node list.
func removeNodes(nodeList []*html.Node, filterFn func(*html.Node) bool) {
	for i := len(nodeList) - 1; i >= 0; i-- {
		node := nodeList[i]
		parentNode := node.Parent
		if parentNode != nil && (filterFn == nil || filterFn(node)) {
			parentNode.RemoveChild(node)
		}
	}
}

// setNodeTag changes tag of the node to newTagName.
func setNodeTag(node *html.Node, newTagName string) {
	if node.Type == html.ElementNode {
		node.Data = newTagName
		node.DataAtom = atom.Lookup([]byte(newTagName))
	}
}

// hasDescendantTagPrefix reports whether any element below node has a
// tag name starting with one of prefixes.
func hasDescendantTagPrefix(node *html.Node, prefixes []string) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			for _, prefix := range prefixes {
				if strings.HasPrefix(child.Data, prefix) {
					return true
				}
			}
		}
		if hasDescendantTagPrefix(child, prefixes) {
			return true
		}
	}
	return false
}

// countNestedTag returns the number of `tag` elements below node that
// also have an `ancestorTag` between them and node.
func countNestedTag(node *html.Node, ancestorTag, tag string) int {
	count := 0
	for _, elem := range dom.GetElementsByTagName(node, tag) {
		for p := elem.Parent; p != nil && p != node; p = p.Parent {
			if dom.TagName(p) == ancestorTag {
				count++
				break
			}
		}
	}
	return count
}

// cloneWithOrigin deep copies src. Every copied node is recorded in
// origin, keyed by the copy.
func cloneWithOrigin(src *html.Node, origin map[*html.Node]*html.Node) *html.Node {
	clone := &html.Node{
		Type:      src.Type,
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
		Attr:      make([]html.Attribute, len(src.Attr)),
	}
	copy(clone.Attr, src.Attr)
	origin[clone] = src

	for child := src.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(cloneWithOrigin(child, origin))
	}
	return clone
}

package diagnostics

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

// DefaultCleanConfig keeps the attributes locators are written against
// (id, class, name, data-test) and drops scripts, styling and media.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority",
	},
	MaxOutputSize: 500_000,
}

// CleanDOM strips a page source down to what is useful when reading a
// failed wait. Unparseable input is returned unchanged.
func CleanDOM(rawHTML string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}
	prune(root, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return rawHTML
	}
	out := sb.String()
	if cfg.MaxOutputSize > 0 && len(out) > cfg.MaxOutputSize {
		out = out[:cfg.MaxOutputSize] + "\n<!-- truncated -->"
	}
	return out
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func prune(n *html.Node, cfg *CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && slices.Contains(cfg.TagsToRemove, c.Data):
			n.RemoveChild(c)
		default:
			if c.Type == html.ElementNode {
				c.Attr = slices.DeleteFunc(c.Attr, func(a html.Attribute) bool {
					return slices.Contains(cfg.AttrsToRemove, a.Key) || strings.HasPrefix(a.Key, "on")
				})
			}
			prune(c, cfg)
		}
		c = next
	}
}

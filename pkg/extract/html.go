package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// metadata is what a page says about itself.
type metadata struct {
	Title       string
	Description string
	SiteName    string
	Type        string
}

// parseMetadata reads OpenGraph tags, falling back to <title> and
// <meta name="description">. Malformed HTML yields whatever was found.
func parseMetadata(body []byte) metadata {
	var meta metadata
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	var pageTitle, metaDescription string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				content := strings.TrimSpace(attr(n, "content"))
				switch attr(n, "property") {
				case "og:title":
					setOnce(&meta.Title, content)
				case "og:description":
					setOnce(&meta.Description, content)
				case "og:site_name":
					setOnce(&meta.SiteName, content)
				case "og:type":
					setOnce(&meta.Type, content)
				}
				if strings.EqualFold(attr(n, "name"), "description") {
					setOnce(&metaDescription, content)
				}
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					setOnce(&pageTitle, strings.TrimSpace(n.FirstChild.Data))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	setOnce(&meta.Title, pageTitle)
	setOnce(&meta.Description, metaDescription)
	return meta
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

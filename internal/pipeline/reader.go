package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ReadDocument loads an FNOL document from disk and returns its text.
// Plain text is read as-is; HTML (claims submitted through web forms or
// email gateways) is reduced to visible text. PDF conversion is an external
// concern — run the file through a text extractor first.
func ReadDocument(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("document not found: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return strings.TrimSpace(string(data)), nil

	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return htmlToText(string(data))

	case ".pdf":
		return "", fmt.Errorf("PDF input is not supported directly; convert %s to text first", filepath.Base(path))

	default:
		return "", fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

// SupportedDocument reports whether a file name has a readable extension
func SupportedDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".html", ".htm":
		return true
	}
	return false
}

// htmlToText extracts visible text from an HTML document, skipping script
// and style content. Block-level boundaries become newlines so the pattern
// extractor still sees one label per line.
func htmlToText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "tr", "li", "h1", "h2", "h3", "h4", "table":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// pkg/parser/parser.go
package parser

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/NivBraz/wordtally/pkg/words"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseSentences returns every non-blank line of content as a sentence
func (p *Parser) ParseSentences(content []byte) []string {
	var sentences []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sentences = append(sentences, line)
	}
	return sentences
}

// ParseHTML turns each text node of an HTML document into a sentence
func (p *Parser) ParseHTML(content []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var sentences []string
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		// if its script or style ignore
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := toSentence(n.Data); s != "" {
				sentences = append(sentences, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}

	extractText(doc)
	return sentences, nil
}

// ParseHTMLSelection returns one sentence per element matching selector
func (p *Parser) ParseHTMLSelection(content []byte, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style").Remove()

	var sentences []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if sentence := toSentence(s.Text()); sentence != "" {
			sentences = append(sentences, sentence)
		}
	})
	return sentences, nil
}

// ParseWordList extracts one word per line, e.g. for stop word files
func (p *Parser) ParseWordList(content []byte) []string {
	var list []string
	for _, line := range strings.Split(string(content), "\n") {
		if word := strings.TrimSpace(line); word != "" && !strings.HasPrefix(word, "#") {
			list = append(list, word)
		}
	}
	return list
}

// toSentence splits text on every non-letter rune and joins the pieces
// with the word delimiter
func toSentence(text string) string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	return strings.Join(fields, words.Delimiter)
}

package extractor

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/dacdangvan/seotool-sub006/models"
)

// Heading is one entry of the flat document-order heading sequence.
type Heading struct {
	Level int
	Text  string
}

func flatHeadings(d *goquery.Document) []Heading {
	var out []Heading
	d.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := collapse(s.Text())
		if text == "" {
			return
		}
		out = append(out, Heading{Level: int(goquery.NodeName(s)[1] - '0'), Text: text})
	})
	return out
}

// BuildHeadingTree nests a flat heading sequence into a forest. Each heading
// becomes a child of the nearest preceding heading with a lower level, so
// skipped levels (h1 then h3) still nest.
func BuildHeadingTree(flat []Heading) []*models.HeadingNode {
	roots := []*models.HeadingNode{}
	var stack []*models.HeadingNode

	for _, h := range flat {
		node := &models.HeadingNode{Level: h.Level, Text: h.Text}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

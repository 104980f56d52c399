package inspect

import (
	"regexp"
	"strings"

	"github.com/imageforge/imageforge/pkg/markup"
)

var (
	svgTagRe  = regexp.MustCompile(`<svg\b[^>]*>`)
	widthRe   = regexp.MustCompile(`\swidth="([^"]+)"`)
	heightRe  = regexp.MustCompile(`\sheight="([^"]+)"`)
	viewBoxRe = regexp.MustCompile(`\sviewBox="([^"]+)"`)
)

// Size holds the size attributes of a document's root tag as written.
// Missing attributes are empty.
type Size struct {
	Width   string `json:"width,omitempty"`
	Height  string `json:"height,omitempty"`
	ViewBox string `json:"viewBox,omitempty"`
}

// ParseSize reads width, height and viewBox from the first svg tag of doc.
func ParseSize(doc string) Size {
	tag := svgTagRe.FindString(doc)
	if tag == "" {
		return Size{}
	}
	return Size{
		Width:   submatch(widthRe, tag),
		Height:  submatch(heightRe, tag),
		ViewBox: submatch(viewBoxRe, tag),
	}
}

func submatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// String formats the size as "w:480  h:800  vb:0 0 480 800", leaving out
// missing parts.
func (s Size) String() string {
	var parts []string
	if s.Width != "" {
		parts = append(parts, "w:"+s.Width)
	}
	if s.Height != "" {
		parts = append(parts, "h:"+s.Height)
	}
	if s.ViewBox != "" {
		parts = append(parts, "vb:"+s.ViewBox)
	}
	return strings.Join(parts, "  ")
}

// Summary describes the shape of a node tree.
type Summary struct {
	Elements int
	Texts    int
	Depth    int
	Tags     map[string]int
}

// Summarize walks root and counts its elements, text children and depth.
func Summarize(root *markup.Node) Summary {
	s := Summary{Tags: make(map[string]int)}
	if root == nil {
		return s
	}
	root.Walk(func(n *markup.Node, depth int) bool {
		s.Elements++
		s.Tags[n.Tag]++
		s.Depth = max(s.Depth, depth+1)
		for _, c := range n.Children {
			if _, ok := c.(markup.Text); ok {
				s.Texts++
			}
		}
		return true
	})
	return s
}

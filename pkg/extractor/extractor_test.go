package extractor

import (
	"reflect"
	"strings"
	"testing"

	"github.com/moyu-x/clean-img/internal"
)

func assertRefs(t *testing.T, got internal.ReferenceSet, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got.Sorted(), want) {
		t.Errorf("refs = %v, want %v", got.Sorted(), want)
	}
}

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"inline image", "![a](b.png)", []string{"b.png"}},
		{"inline image with title", `![a](b.png "title")`, []string{"b.png"}},
		{"inline image with single quoted title", `![a](img/b.png 'the title')`, []string{"b.png"}},
		{"html single quotes", `<img src='x/y/c.jpg'>`, []string{"c.jpg"}},
		{"html double quotes", `<img alt="c" src="x/y/c.jpg" width="20">`, []string{"c.jpg"}},
		{"html case insensitive", `<IMG SRC="Logo.PNG"/>`, []string{"Logo.PNG"}},
		{"wiki embed with size", "![[d.png|200]]", []string{"d.png"}},
		{"wiki link without bang", "[[assets/e.png]]", []string{"e.png"}},
		{"wiki embed with spaces", "![[  my image.png | 300x200 ]]", []string{"my image.png"}},
		{"url encoded", "![x](img/my%20pic.png)", []string{"my pic.png"}},
		{"invalid escape kept", "![x](100%zz.png)", []string{"100%zz.png"}},
		{"query string preserved", "![x](img.png?v=2)", []string{"img.png?v=2"}},
		{"fragment preserved", "<img src=\"a/b.svg#icon\">", []string{"b.svg#icon"}},
		{"absolute url", "![x](https://example.com/static/f.webp)", []string{"f.webp"}},
		{"backslash separator", `![x](assets\win\g.bmp)`, []string{"g.bmp"}},
		{"trailing slash", "![x](assets/dir/)", []string{"dir"}},
		{"no match", "just text with [a link](page.md)", nil},
		{"empty target", "![a]()", nil},
		{"whitespace target", "![a](   )", nil},
		{"empty wiki", "![[]] and [[ | 100]]", nil},
		{"empty src", `<img src="">`, nil},
		{"directory only", "![a](img/.)", []string{"img"}},
		{
			"multiple syntaxes",
			"![x](img/a.png)\n<img src=\"b.jpg\">\n![[c.gif|50]]",
			[]string{"a.png", "b.jpg", "c.gif"},
		},
		{
			"duplicates collapse",
			"![x](a.png) ![y](other/a.png) ![[a.png]] <img src='a.png'>",
			[]string{"a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRefs(t, ExtractReferences(tt.text), tt.want...)
		})
	}
}

func TestExtractInlineImages_NonGreedy(t *testing.T) {
	text := "![one](a.png) middle ![two](b.png) end"
	assertRefs(t, extractInlineImages(text), "a.png", "b.png")
}

func TestExtractInlineImages_DoesNotSpanLines(t *testing.T) {
	text := "![broken](a.png\nstill broken) ![ok](c.png)"
	assertRefs(t, extractInlineImages(text), "c.png")
}

func TestExtractInlineImages_IgnoresPlainLinks(t *testing.T) {
	assertRefs(t, extractInlineImages("[not an image](a.png)"))
}

func TestExtractInlineImages_NestedInLink(t *testing.T) {
	assertRefs(t, extractInlineImages("[![badge](shield.svg)](https://example.com)"), "shield.svg")
}

func TestExtractHTMLImages_MultiplePerLine(t *testing.T) {
	text := `<img src="a.png"><img src='b.png'><img class="x" src="c.png">`
	assertRefs(t, extractHTMLImages(text), "a.png", "b.png", "c.png")
}

func TestExtractHTMLImages_IgnoresOtherTags(t *testing.T) {
	text := `<script src="app.js"></script><image src="a.png"><img data-src="lazy.png">`
	assertRefs(t, extractHTMLImages(text))
}

func TestExtractHTMLImages_DataSrcThenSrc(t *testing.T) {
	text := `<img data-src="lazy.png" src="real.png">`
	assertRefs(t, extractHTMLImages(text), "real.png")
}

func TestExtractHTMLImages_TagSpansLines(t *testing.T) {
	text := "<img\n  alt=\"x\"\n  src=\"multi.png\"\n>"
	assertRefs(t, extractHTMLImages(text), "multi.png")
}

func TestExtractWikiEmbeds_NonGreedy(t *testing.T) {
	text := "![[a.png]] and [[b.png|alias]] and ![[c.png|100]]"
	assertRefs(t, extractWikiEmbeds(text), "a.png", "b.png", "c.png")
}

func TestExtractWikiEmbeds_MalformedNeighbours(t *testing.T) {
	text := "[[ unclosed\n![[ok.png]] ]]\n]] [["
	assertRefs(t, extractWikiEmbeds(text), "ok.png")
}

func TestExtractReferences_UnbalancedMarkupElsewhere(t *testing.T) {
	text := "![broken(\n<img src=\"\n![fine](fine.png)\n[[ also broken"
	assertRefs(t, ExtractReferences(text), "fine.png")
}

func TestExtractReferences_PartitionUnion(t *testing.T) {
	lines := []string{
		"# Title",
		"![a](img/a.png)",
		"text <img src='b.jpg'> text",
		"![[c.gif|20]]",
		"![d](d.png \"t\") ![e](e.png)",
		"plain",
	}
	text := strings.Join(lines, "\n")
	whole := ExtractReferences(text)

	for split := 0; split <= len(lines); split++ {
		first := ExtractReferences(strings.Join(lines[:split], "\n"))
		second := ExtractReferences(strings.Join(lines[split:], "\n"))
		first.Merge(second)
		if !reflect.DeepEqual(first.Sorted(), whole.Sorted()) {
			t.Errorf("split at %d: union = %v, want %v", split, first.Sorted(), whole.Sorted())
		}
	}
}

func TestExtractReferences_Idempotent(t *testing.T) {
	text := "![a](a.png)\n![[b.png]]"
	first := ExtractReferences(text)
	second := ExtractReferences(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ExtractReferences() not idempotent: %v vs %v", first.Sorted(), second.Sorted())
	}
}

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"a.png", "a.png"},
		{"dir/sub/a.png", "a.png"},
		{"/abs/a.png", "a.png"},
		{"./a.png", "a.png"},
		{"../up/a.png", "a.png"},
		{"dir%2Fa.png", "a.png"},
		{"%E5%9B%BE%E7%89%87.png", "图片.png"},
		{"50%.png", "50%.png"},
		{"a+b.png", "a+b.png"},
		{"", ""},
		{"/", ""},
		{".", ""},
		{"..", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := NormalizeTarget(tt.target); got != tt.want {
				t.Errorf("NormalizeTarget(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

package pipeline

import (
	"strings"
	"testing"
)

func TestBuildTOC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "no headings",
			html: "<p>Body</p>",
			want: "",
		},
		{
			name: "single heading",
			html: `<h1 id="title">Title</h1><p>Body</p>`,
			want: "<ul>\n<li><a href=\"#title\">Title</a></li>\n</ul>\n",
		},
		{
			name: "nested then back to top",
			html: `<h1 id="a">A</h1><h2 id="b">B</h2><h1 id="c">C</h1>`,
			want: "<ul>\n<li><a href=\"#a\">A</a><ul>\n<li><a href=\"#b\">B</a></li>\n</ul>\n</li>\n<li><a href=\"#c\">C</a></li>\n</ul>\n",
		},
		{
			name: "closes every level at the end",
			html: `<h1 id="a">A</h1><h2 id="b">B</h2><h3 id="c">C</h3>`,
			want: "<ul>\n<li><a href=\"#a\">A</a><ul>\n<li><a href=\"#b\">B</a><ul>\n<li><a href=\"#c\">C</a></li>\n</ul>\n</li>\n</ul>\n</li>\n</ul>\n",
		},
		{
			name: "level gap is flattened",
			html: `<h1 id="a">A</h1><h3 id="b">B</h3>`,
			want: "<ul>\n<li><a href=\"#a\">A</a><ul>\n<li><a href=\"#b\">B</a></li>\n</ul>\n</li>\n</ul>\n",
		},
		{
			name: "same level headings are siblings",
			html: `<h2 id="a">A</h2><h2 id="b">B</h2>`,
			want: "<ul>\n<li><a href=\"#a\">A</a></li>\n<li><a href=\"#b\">B</a></li>\n</ul>\n",
		},
		{
			name: "headings without id skipped",
			html: `<h1>Plain</h1><h2 id="x">X</h2>`,
			want: "<ul>\n<li><a href=\"#x\">X</a></li>\n</ul>\n",
		},
		{
			name: "inline markup stripped and text escaped",
			html: `<h1 id="a-b"><em>A</em> &amp; <code>B</code></h1>`,
			want: "<ul>\n<li><a href=\"#a-b\">A &amp; B</a></li>\n</ul>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BuildTOC(tt.html); got != tt.want {
				t.Errorf("BuildTOC() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBuildTOC_BalancedLists(t *testing.T) {
	t.Parallel()

	html := `<h3 id="a">A</h3><h1 id="b">B</h1><h2 id="c">C</h2><h4 id="d">D</h4><h2 id="e">E</h2><h1 id="f">F</h1>`
	got := BuildTOC(html)

	for _, tag := range []string{"ul", "li"} {
		opens := strings.Count(got, "<"+tag+">")
		closes := strings.Count(got, "</"+tag+">")
		if opens != closes {
			t.Errorf("<%s> opened %d times, closed %d times in %q", tag, opens, closes, got)
		}
	}
	if n := strings.Count(got, "<a href="); n != 6 {
		t.Errorf("got %d links, want 6", n)
	}
}

func TestDepthTracker(t *testing.T) {
	t.Parallel()

	levels := []int{2, 3, 5, 2, 1, 2}
	want := []int{1, 2, 3, 2, 1, 2}

	headings := make([]headingInfo, len(levels))
	for i, level := range levels {
		headings[i] = headingInfo{Level: level}
	}
	d := newDepthTracker(headings)

	for i, level := range levels {
		if got := d.next(level); got != want[i] {
			t.Errorf("next(%d) #%d = %d, want %d", level, i, got, want[i])
		}
	}
}

func TestBuildTOC_ShallowestHeadingIsTopLevel(t *testing.T) {
	t.Parallel()

	got := BuildTOC(`<h3 id="a">A</h3><h4 id="b">B</h4><h1 id="c">C</h1><h2 id="d">D</h2>`)
	want := "<ul>\n" +
		"<li><a href=\"#a\">A</a><ul>\n" +
		"<li><a href=\"#b\">B</a></li>\n" +
		"</ul>\n</li>\n" +
		"<li><a href=\"#c\">C</a><ul>\n" +
		"<li><a href=\"#d\">D</a></li>\n" +
		"</ul>\n</li>\n" +
		"</ul>\n"
	if got != want {
		t.Errorf("BuildTOC() =\n%s\nwant\n%s", got, want)
	}
}

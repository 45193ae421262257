package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

func TestPathRewriter_FileURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/logo.png">`,
			wantContains: []string{`src="file://`, `images/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="images/logo.png">`,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative link",
			html:         `<a href="other.md">next</a>`,
			wantContains: []string{`href="file://`, `other.md"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#section">jump</a>`,
			wantContains: []string{`href="#section"`},
		},
		{
			name:         "https unchanged",
			html:         `<img src="https://example.com/logo.png">`,
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:me@example.com">mail</a>`,
			wantContains: []string{`href="mailto:me@example.com"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,AAAA">`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "traversal left alone",
			html:         `<img src="../../etc/passwd">`,
			wantContains: []string{`src="../../etc/passwd"`},
			wantExcludes: []string{"file://"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PathRewriter{SourceDir: testSourceDir()}.Rewrite(tt.html)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Rewrite() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Rewrite() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestPathRewriter_BaseURL(t *testing.T) {
	t.Parallel()

	r := PathRewriter{SourceDir: testSourceDir(), BaseURL: "/files/"}

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "image under base URL",
			html: `<img src="images/logo.png">`,
			want: `src="/files/images/logo.png"`,
		},
		{
			name: "dot slash cleaned",
			html: `<img src="./a/../b.png">`,
			want: `src="/files/b.png"`,
		},
		{
			name: "spaces escaped",
			html: `<img src="my images/a b.png">`,
			want: `src="/files/my%20images/a%20b.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Rewrite(tt.html)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Rewrite() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestPathRewriter_EmptySourceDir(t *testing.T) {
	t.Parallel()

	in := `<img src="a.png">`
	got, err := PathRewriter{}.Rewrite(in)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if got != in {
		t.Errorf("Rewrite() = %q, want unchanged %q", got, in)
	}
}

func TestPathRewriter_FullDocumentKeepsStructure(t *testing.T) {
	t.Parallel()

	in := `<!DOCTYPE html><html><head><title>x</title></head><body><img src="a.png"></body></html>`
	got, err := PathRewriter{SourceDir: testSourceDir()}.Rewrite(in)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	for _, want := range []string{"<html>", "<head>", "<title>x</title>", "file://"} {
		if !strings.Contains(got, want) {
			t.Errorf("Rewrite() = %q, want to contain %q", got, want)
		}
	}
}

func TestPathRewriter_Resolve(t *testing.T) {
	t.Parallel()

	r := PathRewriter{SourceDir: testSourceDir(), BaseURL: "/files/"}
	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"#top", "#top"},
		{"//cdn.example.com/x.png", "//cdn.example.com/x.png"},
		{"http://example.com", "http://example.com"},
		{"file:///tmp/x.png", "file:///tmp/x.png"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"/abs/a.png", "/abs/a.png"},
		{"../a.png", "../a.png"},
		{"images/a.png", "/files/images/a.png"},
		{"./a.png", "/files/a.png"},
		{"notes.md#usage", "/files/notes.md#usage"},
		{"a.png?v=2", "/files/a.png?v=2"},
		{"my%20dir/a.png", "/files/my%20dir/a.png"},
	}

	for _, tt := range tests {
		if got := r.resolve(tt.ref, testSourceDir()); got != tt.want {
			t.Errorf("resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestPathRewriter_MediaSources(t *testing.T) {
	t.Parallel()

	r := PathRewriter{SourceDir: testSourceDir(), BaseURL: "/files/"}
	got, err := r.Rewrite(`<video src="clip.mp4"></video><audio src="a.ogg"></audio>`)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	for _, want := range []string{`src="/files/clip.mp4"`, `src="/files/a.ogg"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Rewrite() = %q, want to contain %q", got, want)
		}
	}
}

func TestJoinURLPath(t *testing.T) {
	t.Parallel()

	got := joinURLPath("/files/", filepath.Join("dir", "x y.png"))
	if got != "/files/dir/x%20y.png" {
		t.Errorf("joinURLPath() = %q, want %q", got, "/files/dir/x%20y.png")
	}
}

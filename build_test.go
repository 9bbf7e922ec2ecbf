package mdblog_test

// Notes:
// - Most tests build with WithStyle(mdblog.NoStyle) so assertions on page
//   bodies are not confused by stylesheet text.
// - Collision tests rely on lexical order: "post.markdown" sorts before
//   "post.md".

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdblog"
)

// ---------------------------------------------------------------------------
// Build - Core Behavior
// ---------------------------------------------------------------------------

func TestBuild_WritesPostsAndListing(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), filepath.Join(t.TempDir(), "blog")
	writeSource(t, src, "hello-world.md", post("Hello World", "2024-01-15", "First post", "Some **bold** and *italic* text."))

	result, err := mdblog.Build(context.Background(), src, out, mdblog.WithStyle(mdblog.NoStyle))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Posts) != 1 || len(result.Skipped) != 0 {
		t.Fatalf("Build() posts=%d skipped=%v, want 1 post", len(result.Posts), result.Skipped)
	}
	p := result.Posts[0]
	if p.Slug != "hello-world" || p.URL != "hello-world/" {
		t.Errorf("post slug/url = %q, %q", p.Slug, p.URL)
	}
	if p.DisplayDate != "January 15, 2024" {
		t.Errorf("DisplayDate = %q, want %q", p.DisplayDate, "January 15, 2024")
	}
	if result.ListingPath != filepath.Join(out, "index.html") {
		t.Errorf("ListingPath = %q", result.ListingPath)
	}

	page := readFile(t, filepath.Join(out, "hello-world", "index.html"))
	for _, want := range []string{
		"<title>Hello World | Blog</title>",
		"First post",
		"<strong>bold</strong>",
		"<em>italic</em>",
		`<time datetime="2024-01-15">January 15, 2024</time>`,
		`href="../"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("post page missing %q\n%s", want, page)
		}
	}
	if strings.Contains(page, "*") {
		t.Errorf("post page contains literal asterisks\n%s", page)
	}

	listing := readFile(t, result.ListingPath)
	if !strings.Contains(listing, `<a href="hello-world/">Hello World</a>`) {
		t.Errorf("listing missing link to post\n%s", listing)
	}
}

func TestBuild_ListingOrderedNewestFirst(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "a.md", post("Post A", "2024-01-01", "", "a"))
	writeSource(t, src, "b.md", post("Post B", "2024-03-01", "", "b"))
	writeSource(t, src, "c.md", post("Post C", "February 1, 2024", "", "c"))

	result, err := mdblog.Build(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	gotOrder := slugs(result.Posts)
	if strings.Join(gotOrder, ",") != "b,c,a" {
		t.Errorf("result order = %v, want [b c a]", gotOrder)
	}

	listing := readFile(t, result.ListingPath)
	assertOrder(t, listing, "Post B", "Post C", "Post A")
	if n := strings.Count(listing, `class="post-summary"`); n != 3 {
		t.Errorf("listing has %d entries, want 3", n)
	}
}

func TestBuild_SameDateOrderedBySlug(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "zeta.md", post("Zeta", "2024-05-05", "", "z"))
	writeSource(t, src, "alpha.md", post("Alpha", "2024-05-05", "", "a"))

	result, err := mdblog.Build(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := strings.Join(slugs(result.Posts), ","); got != "alpha,zeta" {
		t.Errorf("order = %s, want alpha,zeta", got)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "one.md", post("One", "2024-01-01", "d1", "```go\nfunc main() {}\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	writeSource(t, src, "two.md", post("Two", "2024-02-01", "d2", "See [one](one.md) and ==this==.\n"))

	b, err := mdblog.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if _, err := b.Build(context.Background(), src, out); err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	first := snapshot(t, out)

	if _, err := b.Build(context.Background(), src, out); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	second := snapshot(t, out)

	if len(first) != 3 {
		t.Errorf("output has %d files, want 3", len(first))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s differs between runs", path)
		}
	}
}

// ---------------------------------------------------------------------------
// Build - Per-File Failures
// ---------------------------------------------------------------------------

func TestBuild_MalformedPostSkipped(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "good.md", post("Good", "2024-01-01", "", "ok"))
	writeSource(t, src, "broken.md", "---\ntitle: \"Broken\"\ndate: \"2024-02-01\"\n\n# never closed\n")
	writeSource(t, src, "nofm.md", "# No frontmatter at all\n")

	result, err := mdblog.Build(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Posts) != 1 {
		t.Errorf("posts = %d, want 1", len(result.Posts))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("skipped = %v, want 2 entries", result.Skipped)
	}
	for _, s := range result.Skipped {
		if !errors.Is(s.Err, mdblog.ErrMissingFrontmatter) {
			t.Errorf("skipped %s err = %v, want ErrMissingFrontmatter", s.Path, s.Err)
		}
	}

	listing := readFile(t, result.ListingPath)
	if strings.Contains(listing, "Broken") {
		t.Error("listing contains the malformed post")
	}
	if _, err := os.Stat(filepath.Join(out, "broken")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("output directory created for malformed post")
	}
}

func TestBuild_UnparseableDate(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeSource(t, src, "dated.md", post("Dated", "2024-01-01", "", "x"))
	writeSource(t, src, "someday.md", post("Someday", "sometime soon", "", "y"))

	t.Run("skipped by default", func(t *testing.T) {
		t.Parallel()

		result, err := mdblog.Build(context.Background(), src, t.TempDir())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(result.Posts) != 1 || len(result.Skipped) != 1 {
			t.Fatalf("posts=%d skipped=%d, want 1 and 1", len(result.Posts), len(result.Skipped))
		}
		if !errors.Is(result.Skipped[0].Err, mdblog.ErrUnparseableDate) {
			t.Errorf("err = %v, want ErrUnparseableDate", result.Skipped[0].Err)
		}
	})

	t.Run("kept and sorted last", func(t *testing.T) {
		t.Parallel()

		result, err := mdblog.Build(context.Background(), src, t.TempDir(), mdblog.WithKeepUndated(true))
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := strings.Join(slugs(result.Posts), ","); got != "dated,someday" {
			t.Fatalf("order = %s, want dated,someday", got)
		}
		undated := result.Posts[1]
		if !undated.Undated() || undated.DisplayDate != "sometime soon" {
			t.Errorf("undated post = %+v", undated)
		}
		if !strings.Contains(readFile(t, result.ListingPath), "sometime soon") {
			t.Error("listing should show the raw date")
		}
	})
}

func TestBuild_SlugCollision(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeSource(t, src, "post.markdown", post("From Markdown", "2024-01-01", "", "first body"))
	writeSource(t, src, "post.md", post("From Md", "2024-02-01", "", "second body"))

	tests := []struct {
		name        string
		policy      mdblog.CollisionPolicy
		wantTitle   string
		wantLoser   string
		wantSkipped string
	}{
		{
			name:        "skip keeps the first file",
			policy:      mdblog.CollisionSkip,
			wantTitle:   "From Markdown",
			wantLoser:   "From Md",
			wantSkipped: "post.md",
		},
		{
			name:        "overwrite keeps the last file",
			policy:      mdblog.CollisionOverwrite,
			wantTitle:   "From Md",
			wantLoser:   "From Markdown",
			wantSkipped: "post.markdown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := t.TempDir()
			result, err := mdblog.Build(context.Background(), src, out, mdblog.WithCollisionPolicy(tt.policy))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			if len(result.Posts) != 1 || result.Posts[0].Title != tt.wantTitle {
				t.Fatalf("posts = %+v, want only %q", result.Posts, tt.wantTitle)
			}
			if len(result.Skipped) != 1 || filepath.Base(result.Skipped[0].Path) != tt.wantSkipped {
				t.Fatalf("skipped = %+v, want %s", result.Skipped, tt.wantSkipped)
			}
			if !errors.Is(result.Skipped[0].Err, mdblog.ErrSlugCollision) {
				t.Errorf("err = %v, want ErrSlugCollision", result.Skipped[0].Err)
			}

			page := readFile(t, filepath.Join(out, "post", "index.html"))
			if !strings.Contains(page, tt.wantTitle) || strings.Contains(page, tt.wantLoser) {
				t.Errorf("post page should hold only %q", tt.wantTitle)
			}
			listing := readFile(t, result.ListingPath)
			if strings.Count(listing, `class="post-summary"`) != 1 || strings.Contains(listing, tt.wantLoser) {
				t.Errorf("listing should have one entry for %q\n%s", tt.wantTitle, listing)
			}
		})
	}
}

func TestBuild_Drafts(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeSource(t, src, "public.md", post("Public", "2024-01-01", "", "x"))
	writeSource(t, src, "wip.md", "---\ntitle: WIP\ndate: 2024-02-01\ndraft: true\n---\nsoon")

	result, err := mdblog.Build(context.Background(), src, t.TempDir())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(result.Posts) != 1 || len(result.Skipped) != 1 || !errors.Is(result.Skipped[0].Err, mdblog.ErrDraft) {
		t.Errorf("default build: posts=%d skipped=%+v, want draft skipped", len(result.Posts), result.Skipped)
	}

	result, err = mdblog.Build(context.Background(), src, t.TempDir(), mdblog.WithDrafts(true))
	if err != nil {
		t.Fatalf("Build(WithDrafts) error = %v", err)
	}
	if len(result.Posts) != 2 || !result.Posts[0].Draft {
		t.Errorf("WithDrafts: posts = %+v, want draft first", result.Posts)
	}
}

func TestBuild_TitleFallback(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeSource(t, src, "my-first-post.md", "---\ndate: 2024-01-01\n---\nbody")

	result, err := mdblog.Build(context.Background(), src, t.TempDir())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(result.Posts) != 1 || result.Posts[0].Title != "My First Post" {
		t.Errorf("posts = %+v, want title derived from file name", result.Posts)
	}
}

// ---------------------------------------------------------------------------
// Build - Fatal Errors
// ---------------------------------------------------------------------------

func TestBuild_FatalErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeSource(t, src, "notes.txt", "not markdown")
		writeSource(t, src, ".hidden.md", post("Hidden", "2024-01-01", "", "x"))

		_, err := mdblog.Build(context.Background(), src, t.TempDir())
		if !errors.Is(err, mdblog.ErrNoPosts) {
			t.Errorf("Build() error = %v, want ErrNoPosts", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		_, err := mdblog.Build(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
		if !errors.Is(err, mdblog.ErrReadSource) {
			t.Errorf("Build() error = %v, want ErrReadSource", err)
		}
	})

	t.Run("output is a file", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))
		blocker := writeSource(t, t.TempDir(), "blog", "file in the way")

		_, err := mdblog.Build(context.Background(), src, blocker)
		if !errors.Is(err, mdblog.ErrWriteOutput) {
			t.Errorf("Build() error = %v, want ErrWriteOutput", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := mdblog.Build(ctx, src, t.TempDir())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Build() error = %v, want context.Canceled", err)
		}
	})

	t.Run("all posts malformed still writes empty listing", func(t *testing.T) {
		t.Parallel()

		src, out := t.TempDir(), t.TempDir()
		writeSource(t, src, "bad.md", "no frontmatter")

		result, err := mdblog.Build(context.Background(), src, out)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if !strings.Contains(readFile(t, result.ListingPath), "No blog posts yet. Check back soon!") {
			t.Error("empty listing should show the no-posts message")
		}
	})
}

// ---------------------------------------------------------------------------
// Build - Options
// ---------------------------------------------------------------------------

func TestBuild_ListingShell(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "a.md", post("Post A", "2024-01-01", "", "x"))
	shell := writeSource(t, t.TempDir(), "index.html", `<!DOCTYPE html>
<html><head><title>Home</title></head>
<body><header>My homepage</header><div id="blog-list">old</div><footer>bye</footer></body></html>`)

	result, err := mdblog.Build(context.Background(), src, out, mdblog.WithListingShell(shell, ""))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	listing := readFile(t, result.ListingPath)
	for _, want := range []string{"<title>Home</title>", "<header>My homepage</header>", `href="a/"`, "<footer>bye</footer>"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q\n%s", want, listing)
		}
	}
	if strings.Contains(listing, "old") {
		t.Error("anchor content should be replaced")
	}

	t.Run("shell without anchor", func(t *testing.T) {
		t.Parallel()

		bare := writeSource(t, t.TempDir(), "index.html", "<html><body><main></main></body></html>")
		_, err := mdblog.Build(context.Background(), src, t.TempDir(), mdblog.WithListingShell(bare, ""))
		if !errors.Is(err, mdblog.ErrListingAnchor) {
			t.Errorf("Build() error = %v, want ErrListingAnchor", err)
		}
	})

	t.Run("missing shell", func(t *testing.T) {
		t.Parallel()

		_, err := mdblog.Build(context.Background(), src, t.TempDir(),
			mdblog.WithListingShell(filepath.Join(t.TempDir(), "absent.html"), ""))
		if !errors.Is(err, mdblog.ErrListingShell) {
			t.Errorf("Build() error = %v, want ErrListingShell", err)
		}
	})
}

func TestBuild_SiblingLinks(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "first.md", post("First", "2024-01-01", "", "Next: [second](second.md#intro), [gone](gone.md)"))
	writeSource(t, src, "second.md", post("Second", "2024-01-02", "", "x"))

	if _, err := mdblog.Build(context.Background(), src, out); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	page := readFile(t, filepath.Join(out, "first", "index.html"))
	if !strings.Contains(page, `href="../second/#intro"`) {
		t.Errorf("sibling link not rewritten\n%s", page)
	}
	if !strings.Contains(page, `href="gone.md"`) {
		t.Errorf("unknown link should be untouched\n%s", page)
	}
}

func TestBuild_MarkSyntax(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	body := "A ==key== point. In Python, a == b == c chains.\n\n[query](http://x/?q==z==) ![img](https://cdn.example.com/a==b==.png)\n"
	writeSource(t, src, "marks.md", post("Marks", "2024-01-01", "", body))

	if _, err := mdblog.Build(context.Background(), src, out); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	page := readFile(t, filepath.Join(out, "marks", "index.html"))
	for _, want := range []string{
		"<mark>key</mark>",
		"a == b == c",
		`href="http://x/?q==z=="`,
		`src="https://cdn.example.com/a==b==.png"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("post page missing %q\n%s", want, page)
		}
	}
	if n := strings.Count(page, "<mark>"); n != 1 {
		t.Errorf("post page has %d <mark> elements, want 1", n)
	}
}

func TestBuild_BaseURL(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))

	result, err := mdblog.Build(context.Background(), src, out, mdblog.WithBaseURL("https://example.com/blog/"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Posts[0].URL != "https://example.com/blog/a/" {
		t.Errorf("URL = %q", result.Posts[0].URL)
	}
	if !strings.Contains(readFile(t, filepath.Join(out, "a", "index.html")), `href="https://example.com/blog/"`) {
		t.Error("post page should link home through the base URL")
	}
}

func TestBuild_CustomAssets(t *testing.T) {
	t.Parallel()

	src, out := t.TempDir(), t.TempDir()
	writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))

	theme := t.TempDir()
	writeSource(t, filepath.Join(theme, "styles"), "brand.css", "body { color: #123456; }")
	writeSource(t, filepath.Join(theme, "templates", "default"), "listing.html",
		`<ol>{{range .Posts}}<li>{{.Title}}</li>{{end}}</ol>`)

	result, err := mdblog.Build(context.Background(), src, out,
		mdblog.WithAssetPath(theme), mdblog.WithStyle("brand"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := readFile(t, result.ListingPath); got != "<ol><li>A</li></ol>" {
		t.Errorf("custom listing = %q", got)
	}
	page := readFile(t, filepath.Join(out, "a", "index.html"))
	if !strings.Contains(page, "#123456") {
		t.Error("post page should inline the custom stylesheet")
	}
	if !strings.Contains(page, ".chroma") {
		t.Error("post page should include highlight CSS")
	}
}

func TestBuild_Clean(t *testing.T) {
	t.Parallel()

	t.Run("removes stale output", func(t *testing.T) {
		t.Parallel()

		src, out := t.TempDir(), t.TempDir()
		writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))
		stale := writeSource(t, filepath.Join(out, "old-post"), "index.html", "stale")

		if _, err := mdblog.Build(context.Background(), src, out, mdblog.WithClean(true)); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if _, err := os.Stat(stale); !errors.Is(err, fs.ErrNotExist) {
			t.Error("stale page survived clean build")
		}
	})

	t.Run("refuses when output contains source", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		src := filepath.Join(out, "posts")
		writeSource(t, src, "a.md", post("A", "2024-01-01", "", "x"))

		_, err := mdblog.Build(context.Background(), src, out, mdblog.WithClean(true))
		if !errors.Is(err, mdblog.ErrUnsafeClean) {
			t.Errorf("Build() error = %v, want ErrUnsafeClean", err)
		}
		if _, err := os.Stat(filepath.Join(src, "a.md")); err != nil {
			t.Errorf("source removed: %v", err)
		}
	})
}

func TestNewBuilder_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     mdblog.Option
		wantErr error
	}{
		{name: "style", opt: mdblog.WithStyle("missing"), wantErr: mdblog.ErrStyleNotFound},
		{name: "template set", opt: mdblog.WithTemplateSet("missing"), wantErr: mdblog.ErrTemplateSetNotFound},
		{name: "date format", opt: mdblog.WithDateFormat("[open"), wantErr: mdblog.ErrInvalidDateFormat},
		{name: "collision", opt: mdblog.WithCollisionPolicy("merge"), wantErr: mdblog.ErrInvalidCollision},
		{name: "highlight style", opt: mdblog.WithHighlightStyle("nope"), wantErr: mdblog.ErrHighlightStyle},
		{name: "asset path", opt: mdblog.WithAssetPath("/nonexistent/theme/dir"), wantErr: mdblog.ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := mdblog.NewBuilder(tt.opt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBuilder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func post(title, date, description, body string) string {
	return "---\ntitle: \"" + title + "\"\ndate: \"" + date + "\"\ndescription: \"" + description + "\"\n---\n" + body + "\n"
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func slugs(posts []mdblog.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func assertOrder(t *testing.T, s string, parts ...string) {
	t.Helper()

	last := -1
	for _, p := range parts {
		idx := strings.Index(s, p)
		if idx == -1 {
			t.Errorf("%q not found", p)
			return
		}
		if idx < last {
			t.Errorf("%q appears out of order", p)
		}
		last = idx
	}
}

// snapshot maps every file under root to its content.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[path] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

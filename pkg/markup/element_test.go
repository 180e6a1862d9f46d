package markup

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementRendersAttributesInOrderWithClassLast(t *testing.T) {
	el := El("input").
		Class("form-control").
		Attr("type", "email").
		Attr("name", "email").
		Attr("value", "a@b.com")

	want := `<input type="email" name="email" value="a@b.com" class="form-control">`
	if got := el.String(); got != want {
		t.Fatalf("unexpected markup\nwant: %s\n got: %s", want, got)
	}
}

func TestElementEscapesAttributesAndText(t *testing.T) {
	el := El("div").Attr("title", `"quoted" <b>`).Text("<script>alert(1)</script>")

	got := el.String()
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected text to be escaped, got %s", got)
	}
	if !strings.Contains(got, `title="&#34;quoted&#34; &lt;b&gt;"`) {
		t.Fatalf("expected escaped attribute, got %s", got)
	}
}

func TestElementFlagsAndConditionalAttributes(t *testing.T) {
	el := El("button").
		AttrIf(false, "type", "submit").
		AttrIf(true, "name", "save").
		FlagIf(true, "disabled").
		FlagIf(false, "hidden")

	want := `<button name="save" disabled></button>`
	if got := el.String(); got != want {
		t.Fatalf("unexpected markup\nwant: %s\n got: %s", want, got)
	}
}

func TestElementClassDeduplicates(t *testing.T) {
	el := El("div").Class("alert alert-danger", "alert", "  ").Class("alert-danger")
	if diff := cmp.Diff([]string{"alert", "alert-danger"}, el.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if !el.HasClass("alert") {
		t.Fatalf("expected HasClass to report alert")
	}
}

func TestElementAppendSkipsNilChildren(t *testing.T) {
	var missing *Element
	el := El("div").Append(nil, missing, Text("a"), El("br"), Raw("<b>b</b>"))

	if got := len(el.Children()); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}
	if got, want := el.String(), `<div>a<br><b>b</b></div>`; got != want {
		t.Fatalf("unexpected markup\nwant: %s\n got: %s", want, got)
	}
}

func TestNilElementRendersNothing(t *testing.T) {
	var el *Element
	var buf strings.Builder
	if err := el.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render nil element: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if String(el) != "" {
		t.Fatalf("expected empty string for nil element")
	}
}

func TestAttrClassReplacesClassList(t *testing.T) {
	el := El("div").Class("a b").Attr("class", "c")
	if got, _ := el.Get("class"); got != "c" {
		t.Fatalf("expected class attr to replace list, got %q", got)
	}
}

func TestLinesJoinsWithBreaks(t *testing.T) {
	got := String(Lines([]string{"first", "<second>"}))
	if want := "first<br>&lt;second&gt;"; got != want {
		t.Fatalf("unexpected lines\nwant: %s\n got: %s", want, got)
	}
}

func TestToHTMLRendersNode(t *testing.T) {
	out, err := ToHTML(context.Background(), El("span").Text("x"))
	if err != nil {
		t.Fatalf("to html: %v", err)
	}
	if string(out) != "<span>x</span>" {
		t.Fatalf("unexpected html %q", out)
	}
}

func TestSanitizeKeepsIconsAndDropsScripts(t *testing.T) {
	got := Sanitize(`<i class="bi bi-save"></i> Save<script>alert(1)</script>`)
	if strings.Contains(got, "script") {
		t.Fatalf("expected script to be stripped, got %q", got)
	}
	if !strings.Contains(got, `<i class="bi bi-save"></i>`) {
		t.Fatalf("expected icon markup to survive, got %q", got)
	}
}

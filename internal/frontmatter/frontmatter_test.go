package frontmatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/plainrfc/internal/rfcxml"
	"github.com/google/go-cmp/cmp"
)

const originalPrologue = `<?xml version="1.0" encoding="US-ASCII"?>
<!DOCTYPE rfc SYSTEM "rfc2629.dtd">
<?rfc toc="yes"?>

<rfc category="info" docName="sock-api-revamp-01">

  <front>

    <title abbrev="BSD Socket API Revamp">
    BSD Socket API Revamp
    </title>

    <author fullname="Martin Sustrik" initials="M." surname="Sustrik" role="editor">
      <address>
        <email>sustrik@250bpm.com</email>
      </address>
    </author>

    <date month="April" year="2018" />

    <area>Applications</area>
    <workgroup>Internet Engineering Task Force</workgroup>

    <keyword>BSD sockets</keyword>
    <keyword>API</keyword>
    <keyword>composability</keyword>

    <abstract>
      <t>Blah. Blah.</t>
    </abstract>

  </front>

  <middle>
`

func TestDefault_HeaderMatchesPrologue(t *testing.T) {
	if diff := cmp.Diff(Default().Header(), originalPrologue); diff != "" {
		t.Error("-got +want:\n", diff)
	}
}

func TestDefault_Footer(t *testing.T) {
	want := "\n  </middle>\n\n</rfc>\n"
	if got := Default().Footer(); got != want {
		t.Errorf("footer = %q, want %q", got, want)
	}
}

func TestMetadata_IsBoilerplate(t *testing.T) {
	var _ rfcxml.Boilerplate = Metadata{}
	doc, err := rfcxml.Convert([]string{"#1 Intro", "hi"}, Default())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc, originalPrologue) {
		t.Error("document does not start with the prologue")
	}
	if !strings.HasSuffix(doc, "</section>\n\n  </middle>\n\n</rfc>\n") {
		t.Errorf("unexpected document tail: %q", doc[len(doc)-40:])
	}
}

func TestParse_OverridesOnlyGivenFields(t *testing.T) {
	m, err := Parse([]byte(`
title: Messaging Patterns
doc_name: msg-patterns-00
toc: false
keywords: [messaging]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Messaging Patterns" || m.DocName != "msg-patterns-00" {
		t.Errorf("overrides not applied: %+v", m)
	}
	if m.TOC {
		t.Error("expected toc=false")
	}
	if m.Area != "Applications" {
		t.Errorf("expected default area, got %q", m.Area)
	}
	if diff := cmp.Diff(m.Keywords, []string{"messaging"}); diff != "" {
		t.Error("keywords -got +want:\n", diff)
	}
	if len(m.Authors) != 1 || m.Authors[0].Surname != "Sustrik" {
		t.Errorf("expected default author, got %+v", m.Authors)
	}
	h := m.Header()
	if !strings.Contains(h, `<?rfc toc="no"?>`) {
		t.Error("expected toc=no processing instruction")
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		desc string
		yaml string
	}{
		{"empty title", `title: ""`},
		{"empty doc name", `doc_name: "  "`},
		{"no authors", `authors: []`},
		{"author without name", "authors:\n  - surname: X"},
		{"bad yaml", "title: [unclosed"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.yaml)); err == nil {
			t.Errorf("%s: expected error", tt.desc)
		}
	}
}

func TestHeader_EscapesAndOptionalFields(t *testing.T) {
	m := Default()
	m.Title = `Q&A "Guide"`
	m.Abbrev = "Q&A"
	m.Authors = []Author{
		{FullName: "A. One", Email: "one@example.org"},
		{FullName: "B. Two", Role: "editor"},
	}
	m.Date = Date{Day: 3, Month: "May", Year: 2026}
	m.Abstract = "First para.\n\nSecond <para>."

	h := m.Header()
	for _, want := range []string{
		`<title abbrev="Q&amp;A">`,
		"    Q&amp;A &quot;Guide&quot;\n",
		`<author fullname="A. One">` + "\n      <address>",
		`<author fullname="B. Two" role="editor">` + "\n    </author>",
		`<date day="3" month="May" year="2026" />`,
		"<t>First para.</t>\n      <t>Second &lt;para&gt;.</t>",
	} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.yaml")
	if err := os.WriteFile(path, []byte("title: From File\nabbrev: FF\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "From File" || m.Abbrev != "FF" {
		t.Errorf("unexpected metadata: %+v", m)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

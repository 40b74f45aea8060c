// Package frontmatter holds the bibliographic boilerplate placed around a
// converted body: the xml2rfc <front> section and the closing tags.
package frontmatter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/plainrfc/internal/rfcxml"
	"gopkg.in/yaml.v3"
)

// Metadata describes the document front matter.
type Metadata struct {
	Category  string   `yaml:"category"`
	DocName   string   `yaml:"doc_name"`
	Title     string   `yaml:"title"`
	Abbrev    string   `yaml:"abbrev"`
	TOC       bool     `yaml:"toc"`
	Authors   []Author `yaml:"authors"`
	Date      Date     `yaml:"date"`
	Area      string   `yaml:"area"`
	Workgroup string   `yaml:"workgroup"`
	Keywords  []string `yaml:"keywords"`
	Abstract  string   `yaml:"abstract"`
}

// Author is one <author> entry.
type Author struct {
	FullName string `yaml:"fullname"`
	Initials string `yaml:"initials"`
	Surname  string `yaml:"surname"`
	Role     string `yaml:"role"`
	Email    string `yaml:"email"`
}

// Date is the publication date. Day is optional.
type Date struct {
	Day   int    `yaml:"day"`
	Month string `yaml:"month"`
	Year  int    `yaml:"year"`
}

// Default returns the built-in front matter.
func Default() Metadata {
	return Metadata{
		Category: "info",
		DocName:  "sock-api-revamp-01",
		Title:    "BSD Socket API Revamp",
		Abbrev:   "BSD Socket API Revamp",
		TOC:      true,
		Authors: []Author{{
			FullName: "Martin Sustrik",
			Initials: "M.",
			Surname:  "Sustrik",
			Role:     "editor",
			Email:    "sustrik@250bpm.com",
		}},
		Date:      Date{Month: "April", Year: 2018},
		Area:      "Applications",
		Workgroup: "Internet Engineering Task Force",
		Keywords:  []string{"BSD sockets", "API", "composability"},
		Abstract:  "Blah. Blah.",
	}
}

// LoadFile reads a YAML front matter file. Fields the file leaves out keep
// their default values.
func LoadFile(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read front matter: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML front matter on top of the defaults.
func Parse(data []byte) (Metadata, error) {
	m := Default()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse front matter: %w", err)
	}
	if m.Abbrev == "" {
		m.Abbrev = m.Title
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("front matter: title is required")
	}
	if strings.TrimSpace(m.DocName) == "" {
		return fmt.Errorf("front matter: doc_name is required")
	}
	if len(m.Authors) == 0 {
		return fmt.Errorf("front matter: at least one author is required")
	}
	for i, a := range m.Authors {
		if a.FullName == "" {
			return fmt.Errorf("front matter: author %d has no fullname", i+1)
		}
	}
	return nil
}

// Header renders everything up to and including the opening <middle> tag.
func (m Metadata) Header() string {
	e := rfcxml.Escape
	toc := "no"
	if m.TOC {
		toc = "yes"
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="US-ASCII"?>` + "\n")
	sb.WriteString(`<!DOCTYPE rfc SYSTEM "rfc2629.dtd">` + "\n")
	sb.WriteString(`<?rfc toc="` + toc + `"?>` + "\n\n")
	sb.WriteString(`<rfc category="` + e(m.Category) + `" docName="` + e(m.DocName) + `">` + "\n\n")
	sb.WriteString("  <front>\n\n")

	sb.WriteString(`    <title abbrev="` + e(m.Abbrev) + `">` + "\n")
	sb.WriteString("    " + e(m.Title) + "\n")
	sb.WriteString("    </title>\n\n")

	for _, a := range m.Authors {
		sb.WriteString(`    <author fullname="` + e(a.FullName) + `"`)
		if a.Initials != "" {
			sb.WriteString(` initials="` + e(a.Initials) + `"`)
		}
		if a.Surname != "" {
			sb.WriteString(` surname="` + e(a.Surname) + `"`)
		}
		if a.Role != "" {
			sb.WriteString(` role="` + e(a.Role) + `"`)
		}
		sb.WriteString(">\n")
		if a.Email != "" {
			sb.WriteString("      <address>\n")
			sb.WriteString("        <email>" + e(a.Email) + "</email>\n")
			sb.WriteString("      </address>\n")
		}
		sb.WriteString("    </author>\n\n")
	}

	sb.WriteString("    <date")
	if m.Date.Day > 0 {
		sb.WriteString(` day="` + strconv.Itoa(m.Date.Day) + `"`)
	}
	if m.Date.Month != "" {
		sb.WriteString(` month="` + e(m.Date.Month) + `"`)
	}
	if m.Date.Year > 0 {
		sb.WriteString(` year="` + strconv.Itoa(m.Date.Year) + `"`)
	}
	sb.WriteString(" />\n\n")

	if m.Area != "" {
		sb.WriteString("    <area>" + e(m.Area) + "</area>\n")
	}
	if m.Workgroup != "" {
		sb.WriteString("    <workgroup>" + e(m.Workgroup) + "</workgroup>\n")
	}
	if m.Area != "" || m.Workgroup != "" {
		sb.WriteString("\n")
	}

	for _, k := range m.Keywords {
		sb.WriteString("    <keyword>" + e(k) + "</keyword>\n")
	}
	if len(m.Keywords) > 0 {
		sb.WriteString("\n")
	}

	if paras := abstractParagraphs(m.Abstract); len(paras) > 0 {
		sb.WriteString("    <abstract>\n")
		for _, p := range paras {
			sb.WriteString("      <t>" + e(p) + "</t>\n")
		}
		sb.WriteString("    </abstract>\n\n")
	}

	sb.WriteString("  </front>\n\n")
	sb.WriteString("  <middle>\n")
	return sb.String()
}

// Footer closes <middle> and the document.
func (m Metadata) Footer() string {
	return "\n  </middle>\n\n</rfc>\n"
}

// abstractParagraphs splits the abstract on blank lines.
func abstractParagraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load returns the front matter at path, or the defaults when path is empty.
func Load(path string) (Metadata, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Package site holds the landing page content and its HTML template, both
// embedded into the binary.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the landing page template.
const IndexTemplate = "index.html"

type Hero struct {
	Heading      string `yaml:"heading"`
	Subheading   string `yaml:"subheading"`
	PrimaryCTA   string `yaml:"primary_cta"`
	SecondaryCTA string `yaml:"secondary_cta"`
}

type Card struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type Stat struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Symbol string `yaml:"symbol"`
}

type Service struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Tech        []string `yaml:"tech"`
	Description string   `yaml:"description"`
}

type ContactInfo struct {
	Tagline string `yaml:"tagline"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
}

type Footer struct {
	Blurb      string `yaml:"blurb"`
	Newsletter string `yaml:"newsletter"`
}

// Content is the static copy of every landing page section.
type Content struct {
	Hero     Hero        `yaml:"hero"`
	About    []Card      `yaml:"about"`
	Stats    []Stat      `yaml:"stats"`
	Services []Service   `yaml:"services"`
	Projects []Project   `yaml:"projects"`
	Contact  ContactInfo `yaml:"contact"`
	Footer   Footer      `yaml:"footer"`
}

// Load parses the embedded content document.
func Load() (*Content, error) {
	return Parse(contentYAML)
}

// Parse decodes a content document. Unknown keys and a missing hero heading
// are errors.
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}
	if c.Hero.Heading == "" {
		return nil, fmt.Errorf("failed to parse site content: hero.heading is empty")
	}
	return &c, nil
}

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html")
}

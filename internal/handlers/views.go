package handlers

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

//go:embed templates/*.html
var templateFS embed.FS

// WordsPerMinute is the reading speed behind read-time estimates.
const WordsPerMinute = 200

// Site describes the blog in page heads and the layout.
type Site struct {
	Name        string
	Description string
}

// Pages renders the public blog templates.
type Pages struct {
	site  Site
	pages map[string]*template.Template
	now   func() time.Time
}

// NewPages parses the embedded templates.
func NewPages(site Site) (*Pages, error) {
	if site.Name == "" {
		site.Name = "Blog"
	}

	base, err := template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("handlers: parse layout: %w", err)
	}

	p := &Pages{site: site, pages: make(map[string]*template.Template), now: time.Now}
	for _, name := range []string{"index", "article", "error"} {
		t, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("handlers: parse %s page: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// meta is the page head.
type meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Type        string
	Published   string
	Modified    string
	Image       *article.Image
	NoIndex     bool
}

type pageData struct {
	Site Site
	Meta meta
	Year int
	Body any
}

// page is a parsed template bound to its data. It implements web.Component.
type page struct {
	tmpl *template.Template
	data pageData
}

func (p page) Render(_ context.Context, w io.Writer) error {
	return p.tmpl.ExecuteTemplate(w, "layout", p.data)
}

func (p *Pages) render(name string, m meta, body any) web.Component {
	if m.Type == "" {
		m.Type = "website"
	}
	return page{
		tmpl: p.pages[name],
		data: pageData{Site: p.site, Meta: m, Year: p.now().Year(), Body: body},
	}
}

// articleCard is an article as listed on a page.
type articleCard struct {
	Title      string
	Path       string
	Excerpt    string
	Categories []string
	Image      *article.Image
	Date       string
	ISODate    string
	ReadTime   int
}

func cardOf(a *article.Article) articleCard {
	return articleCard{
		Title:      a.Title,
		Path:       "/blog/" + a.Slug,
		Excerpt:    a.Excerpt,
		Categories: a.Categories,
		Image:      a.FeaturedImage,
		Date:       a.CreatedAt.Format("January 2, 2006"),
		ISODate:    a.CreatedAt.Format(time.RFC3339),
		ReadTime:   ReadTime(a.Content),
	}
}

// ReadTime estimates the minutes needed to read HTML content, at least one.
func ReadTime(content string) int {
	words := sanitizer.PlainTextWords(content)
	return max(1, (words+WordsPerMinute-1)/WordsPerMinute)
}

// Index renders the article list.
func (p *Pages) Index(articles []*article.Article, canonicalURL string) web.Component {
	cards := make([]articleCard, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, cardOf(a))
	}
	title := p.site.Name
	if p.site.Description != "" {
		title += " - " + p.site.Description
	}
	return p.render("index", meta{
		Title:       title,
		Description: p.site.Description,
		Canonical:   canonicalURL,
	}, cards)
}

type articleBody struct {
	Article  articleCard
	Content  template.HTML
	Keywords []string
	Related  []articleCard
}

// Article renders one article. canonicalURL overrides an empty stored one.
func (p *Pages) Article(a *article.Article, related []*article.Article, canonicalURL string) web.Component {
	body := articleBody{
		Article: cardOf(a),
		// Content is sanitized with bluemonday when saved.
		Content:  template.HTML(a.Content),
		Keywords: a.Keywords,
	}
	for _, r := range related {
		body.Related = append(body.Related, cardOf(r))
	}

	m := meta{
		Title:       firstNonEmpty(a.MetaTitle, a.Title),
		Description: firstNonEmpty(a.MetaDescription, a.Excerpt),
		Keywords:    a.Keywords,
		Canonical:   firstNonEmpty(a.CanonicalURL, canonicalURL),
		Type:        "article",
		Published:   a.CreatedAt.UTC().Format(time.RFC3339),
		Modified:    a.UpdatedAt.UTC().Format(time.RFC3339),
		Image:       a.FeaturedImage,
	}
	return p.render("article", m, body)
}

type errorBody struct {
	Title   string
	Message string
}

// Error renders the error page for status code.
func (p *Pages) Error(code int, message string) web.Component {
	title := http.StatusText(code)
	if code == http.StatusNotFound {
		title = "Page not found"
		message = "The page you are looking for does not exist or is no longer published."
	}
	if code >= http.StatusInternalServerError {
		message = "Something went wrong on our side. Please try again later."
	}
	return p.render("error", meta{Title: title, NoIndex: true}, errorBody{Title: title, Message: message})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

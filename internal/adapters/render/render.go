// Package render turns a widget ViewState into HTML or plain text. Every
// function here is pure: the same state always renders the same output.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"path"
	"strconv"
	"strings"

	"weatherwidget.app/internal/core/weather"
	"weatherwidget.app/internal/core/widget"
)

// AssetPathPrefix is the URL prefix the icon assets are served under
const AssetPathPrefix = "/assets/icons/"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/icons/*.svg
var assetFS embed.FS

// Renderer renders view states through the embedded templates
type Renderer struct {
	templates *template.Template
}

// StateView is the template model of a ViewState
type StateView struct {
	Kind    string
	Message string
	Record  *weather.Record
}

// PageData is the template model of the full page
type PageData struct {
	Query string
	State StateView
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// MustNewRenderer is NewRenderer for process start-up
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Funcs returns the helpers the templates use
func Funcs() template.FuncMap {
	return template.FuncMap{
		"num":      FormatNumber,
		"iconURL":  IconURL,
		"assetURL": func(name string) string { return AssetPathPrefix + name },
	}
}

// View converts a ViewState into its template model
func View(state widget.ViewState) StateView {
	view := StateView{Kind: state.Kind().String()}
	switch s := state.(type) {
	case widget.Failed:
		view.Message = s.Message
	case widget.Ready:
		record := s.Record
		view.Record = &record
	}
	return view
}

// NewPageData builds the page model for a query and state
func NewPageData(query string, state widget.ViewState) PageData {
	return PageData{Query: query, State: View(state)}
}

// Fragment renders the state region of the widget
func (r *Renderer) Fragment(state widget.ViewState) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "fragment", View(state)); err != nil {
		return "", fmt.Errorf("render fragment: %w", err)
	}
	return buf.String(), nil
}

// Page renders the whole document
func (r *Renderer) Page(data PageData) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// Text renders a state for a terminal. Idle renders nothing.
func Text(state widget.ViewState) string {
	switch s := state.(type) {
	case widget.Loading:
		return "Loading..."
	case widget.Failed:
		return s.Message
	case widget.NotFound:
		return widget.NotFoundMessage
	case widget.Ready:
		return readyText(s.Record)
	default:
		return ""
	}
}

func readyText(r weather.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %d°C\n", r.Icon, r.Temperature)
	fmt.Fprintf(&b, "%s\n%s\n", r.City, r.Country)
	fmt.Fprintf(&b, "Latitude: %s  Longitude: %s\n", FormatNumber(r.Latitude), FormatNumber(r.Longitude))
	fmt.Fprintf(&b, "Humidity: %d%%\n", r.Humidity)
	fmt.Fprintf(&b, "Wind Speed: %s km/h", FormatNumber(r.WindSpeed))
	return b.String()
}

// FormatNumber prints v with the fewest digits that round-trip, so 4 is "4"
// and 13.0878 is "13.0878".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IconURL is the asset URL for an icon
func IconURL(icon weather.Icon) string {
	return AssetPathPrefix + icon.AssetFile()
}

// Asset returns an embedded icon asset and its content type. Only bare file
// names are accepted.
func Asset(name string) ([]byte, string, bool) {
	if name == "" || path.Base(name) != name || !fs.ValidPath(name) {
		return nil, "", false
	}

	data, err := assetFS.ReadFile("assets/icons/" + name)
	if err != nil {
		return nil, "", false
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, true
}

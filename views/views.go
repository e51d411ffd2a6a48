// Package views renders the dashboard pages from embedded html/template files.
package views

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"spotfix-admin/models"
	"spotfix-admin/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names as registered with gin.
const (
	ListTemplate   = "list.html"
	DetailTemplate = "detail.html"
	ErrorTemplate  = "error.html"
)

// Options controls date rendering.
type Options struct {
	DateLayout string
	Location   *time.Location
}

// Funcs is the template function map shared by every page.
func Funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"statusColor": utils.StatusColor,
		"statusLabel": utils.StatusLabel,
		"formatDate": func(t time.Time) string {
			return utils.FormatDate(t, opts.DateLayout, opts.Location)
		},
	}
}

// Load parses all page templates.
func Load(opts Options) (*template.Template, error) {
	return template.New("").Funcs(Funcs(opts)).ParseFS(templateFS, "templates/*.html")
}

// Row is one line of the list table.
type Row struct {
	ID          string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
}

// ListPage feeds list.html.
type ListPage struct {
	Counts models.StatusCounts
	Rows   []Row
}

// NewListPage builds the list page from issues already in display order.
func NewListPage(issues []models.Issue) ListPage {
	rows := make([]Row, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, Row{
			ID:          issue.ID.Hex(),
			Title:       issue.Title,
			Description: utils.Truncate(issue.Description, utils.DescriptionPreviewLength),
			Status:      issue.Status,
			CreatedAt:   issue.CreatedAt,
		})
	}
	return ListPage{Counts: models.CountByStatus(issues), Rows: rows}
}

// StatusOption is one entry of the status select.
type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// DetailPage feeds detail.html.
type DetailPage struct {
	ID          string
	Title       string
	Status      string
	Description string
	Latitude    string
	Longitude   string
	ImageURL    string
	Options     []StatusOption
	// Notice is shown above the form after a rejected or failed update.
	Notice string
}

// NewDetailPage builds the detail page for one issue.
func NewDetailPage(issue *models.Issue, notice string) DetailPage {
	current := issue.CurrentStatus()
	options := make([]StatusOption, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		options = append(options, StatusOption{
			Value:    string(s),
			Label:    s.Label(),
			Selected: s == current,
		})
	}

	page := DetailPage{
		ID:          issue.ID.Hex(),
		Title:       issue.Title,
		Status:      issue.Status,
		Description: issue.Description,
		Latitude:    formatCoordinate(issue.Latitude),
		Longitude:   formatCoordinate(issue.Longitude),
		Options:     options,
		Notice:      notice,
	}
	if issue.HasImage() {
		page.ImageURL = *issue.ImageURL
	}
	return page
}

// ErrorPage feeds error.html.
type ErrorPage struct {
	Message string
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

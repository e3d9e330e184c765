package reports

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"path"
	"time"

	"github.com/google/uuid"

	"chartdeck/internal/charts"
	"chartdeck/internal/config"
	"chartdeck/internal/logger"
	"chartdeck/internal/models"
	"chartdeck/internal/storage"
)

//go:embed templates/export.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/export.html"))

// ExportsDir is the storage folder holding one subfolder per export
const ExportsDir = "exports"

// Source is the dashboard state an export is taken from.
// *dashboard.Dashboard satisfies it; its Dataset returns the cached draws, so
// exported random kinds match what the live dashboard shows.
type Source interface {
	Filters() models.FilterState
	Backend() models.Backend
	Theme() models.Theme
	Dataset(kind models.ChartKind) models.NeutralChartData
}

// Export describes a stored export
type Export struct {
	ID          string             `json:"id"`
	Path        string             `json:"path"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Charts      []models.ChartKind `json:"charts"`
}

// Exporter renders the whole dashboard into a static HTML page and stores it
type Exporter struct {
	storage  storage.StorageClient
	source   Source
	markdown *MarkdownRenderer
	now      func() time.Time
	newID    func() string
	log      *logger.Logger
}

// NewExporter creates an exporter writing to client
func NewExporter(client storage.StorageClient, source Source) *Exporter {
	return &Exporter{
		storage:  client,
		source:   source,
		markdown: NewMarkdownRenderer(),
		now:      time.Now,
		newID:    uuid.NewString,
		log:      logger.GetGlobalLogger().WithComponent("reports"),
	}
}

type pageData struct {
	ID         string
	ScriptURL  string
	Background string
	TextColor  string
	GridColor  string
	Summary    template.HTML
	Charts     []template.HTML
}

// Export renders every catalog chart under the current selection and stores
// the page as exports/<id>/index.html next to its markdown summary
func (e *Exporter) Export(ctx context.Context) (*Export, error) {
	id := e.newID()
	theme := e.source.Theme()
	summary := Summary{
		Filters:     e.source.Filters(),
		Backend:     e.source.Backend(),
		Theme:       theme,
		GeneratedAt: e.now(),
		Version:     config.GetVersion(),
	}

	md := summary.Markdown()
	summaryHTML, err := e.markdown.ToHTML(md)
	if err != nil {
		return nil, err
	}

	data := pageData{
		ID:         id,
		ScriptURL:  charts.EChartsCDN,
		Background: theme.Background(),
		TextColor:  theme.TextColor(),
		GridColor:  theme.GridColor(),
		Summary:    template.HTML(summaryHTML),
	}

	var kinds []models.ChartKind
	for _, kind := range models.AllKinds {
		payload := charts.Map(models.BackendECharts, e.source.Dataset(kind), theme)
		if len(payload) == 0 {
			e.log.Warn("Skipping chart with empty payload", map[string]interface{}{"kind": kind})
			continue
		}
		snippet, err := charts.NewSnippet(kind, kind.Title(), payload)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s snippet: %w", kind, err)
		}
		data.Charts = append(data.Charts, template.HTML(snippet.HTML))
		kinds = append(kinds, kind)
	}

	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, data); err != nil {
		return nil, fmt.Errorf("failed to execute export template: %w", err)
	}

	folder := storage.ExportFolderPath(id)
	if err := e.storage.CreateDir(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create export folder: %w", err)
	}
	indexPath := folder + "/index.html"
	if err := e.storage.StoreFile(ctx, indexPath, page.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to store export page: %w", err)
	}
	if err := e.storage.StoreFile(ctx, folder+"/summary.md", []byte(md)); err != nil {
		return nil, fmt.Errorf("failed to store export summary: %w", err)
	}

	e.log.Info("Export stored", map[string]interface{}{
		"id":      id,
		"path":    indexPath,
		"charts":  len(kinds),
		"filters": summary.Filters.String(),
	})

	return &Export{ID: id, Path: indexPath, GeneratedAt: summary.GeneratedAt, Charts: kinds}, nil
}

// List returns the ids of stored exports in lexical order
func (e *Exporter) List(ctx context.Context) ([]string, error) {
	entries, err := e.storage.ListDir(ctx, ExportsDir, false)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, path.Base(entry))
	}
	return ids, nil
}

// Page returns the stored HTML of export id
func (e *Exporter) Page(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("export id %q: %w", id, models.ErrUnknownValue)
	}
	data, err := e.storage.GetFile(ctx, storage.ExportFolderPath(id)+"/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", id, err)
	}
	return data, nil
}

package api

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/pbaille/dayplan/internal/grid"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type paletteEntry struct {
	Label string
	Name  string
}

type pageData struct {
	View    GridView
	Palette []paletteEntry
}

// palette lists the labels offered on the page.
var palette = []string{"sleep"}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{View: newGridView(s.grid.Snapshot())}
	for _, label := range palette {
		data.Palette = append(data.Palette, paletteEntry{Label: label, Name: grid.DisplayName(label)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("Render page", zap.Error(err))
	}
}

package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/prompt"
)

//go:embed templates/index.html
var templateFS embed.FS

func parsePage() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/index.html")
}

type optionField struct {
	Name        string
	Label       string
	Value       string
	Suggestions []string
}

type pageData struct {
	Lang         string
	Title        string
	Customize    string
	ModelLabel   string
	ProductLabel string
	Choose       string
	Generate     string
	Generating   string
	Loader       string
	ResultLabel  string
	Placeholder  string
	Download     string
	Fields       []optionField
	State        stateResponse
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := printerFor(ctx)
	studio := studioFromContext(ctx)
	snap := studio.Snapshot()

	labels := map[prompt.Field]string{
		prompt.FieldBackground:      p.Sprintf(msgBackground),
		prompt.FieldClothing:        p.Sprintf(msgClothing),
		prompt.FieldExpression:      p.Sprintf(msgExpression),
		prompt.FieldProductPosition: p.Sprintf(msgPosition),
	}
	fields := make([]optionField, 0, len(prompt.Fields))
	for _, f := range prompt.Fields {
		fields = append(fields, optionField{
			Name:        string(f),
			Label:       labels[f],
			Value:       optionValue(snap.Options, f),
			Suggestions: prompt.Suggestions(f),
		})
	}

	data := pageData{
		Lang:         LocaleFromContext(ctx).String(),
		Title:        p.Sprintf(msgTitle),
		Customize:    p.Sprintf(msgCustomize),
		ModelLabel:   p.Sprintf(msgModelImage),
		ProductLabel: p.Sprintf(msgProductImage),
		Choose:       p.Sprintf(msgChoose),
		Generate:     p.Sprintf(msgGenerate),
		Generating:   p.Sprintf(msgGenerating),
		Loader:       p.Sprintf(msgLoader),
		ResultLabel:  p.Sprintf(msgResult),
		Placeholder:  p.Sprintf(msgPlaceholder),
		Download:     p.Sprintf(msgDownload),
		Fields:       fields,
		State:        newStateResponse(ctx, snap),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		slog.ErrorContext(ctx, "ページの描画に失敗しました", "error", err)
	}
}

func optionValue(opts domain.OptionSet, f prompt.Field) string {
	switch f {
	case prompt.FieldBackground:
		return opts.Background
	case prompt.FieldClothing:
		return opts.Clothing
	case prompt.FieldExpression:
		return opts.Expression
	case prompt.FieldProductPosition:
		return opts.ProductPosition
	}
	return ""
}

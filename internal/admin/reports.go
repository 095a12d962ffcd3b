// ABOUTME: Static reports view shown to managers
// ABOUTME: Metrics are not computed client-side; the view only describes what is planned

package admin

// ReportSummary is the content of the reports view.
type ReportSummary struct {
	Title   string
	Summary string
	Note    string
}

// Report returns the reports view content.
func Report() ReportSummary {
	return ReportSummary{
		Title:   "Admin • Reports",
		Summary: "Resumo e métricas centralizadas (origem, categorias, SLA, CSAT).",
		Note:    "Em breve: gráficos e filtros avançados.",
	}
}

package main

import (
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
)

// Response shapes. Money keeps the raw number and adds a display string in
// the configured currency.

type categoryView struct {
	Slug          string `json:"slug"`
	Label         string `json:"label"`
	SupportsLabor bool   `json:"supportsLabor"`
}

type itemView struct {
	estimate.CalculationItem
	FormattedUnitPrice string `json:"formattedUnitPrice"`
	FormattedTotal     string `json:"formattedTotal"`
}

type budgetView struct {
	ProjectName     string     `json:"projectName"`
	CurrentBudgetID string     `json:"currentBudgetId,omitempty"`
	Items           []itemView `json:"items"`
	ItemCount       int        `json:"itemCount"`
	TotalBudget     float64    `json:"totalBudget"`
	FormattedTotal  string     `json:"formattedTotal"`
}

type savedBudgetView struct {
	history.SavedBudget
	FormattedTotal string `json:"formattedTotal"`
}

type saveResultView struct {
	Budget    savedBudgetView `json:"budget"`
	Persisted bool            `json:"persisted"`
}

type statsView struct {
	history.Stats
	FormattedTotalValue   string `json:"formattedTotalValue"`
	FormattedAverageValue string `json:"formattedAverageValue"`
}

type settingsView struct {
	settings.Settings
	Persisted bool `json:"persisted"`
}

type errorView struct {
	Error string `json:"error"`
}

func (s *server) currency() string {
	return s.settings.Get().Currency
}

func (s *server) itemView(item estimate.CalculationItem) itemView {
	code := s.currency()
	return itemView{
		CalculationItem:    item,
		FormattedUnitPrice: pricing.FormatCurrency(item.UnitPrice, code),
		FormattedTotal:     pricing.FormatCurrency(item.Total, code),
	}
}

func (s *server) budgetView() budgetView {
	items := s.budget.Items()
	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = s.itemView(item)
	}
	id, _ := s.budget.CurrentBudgetID()
	total := s.budget.Total()
	return budgetView{
		ProjectName:     s.budget.ProjectName(),
		CurrentBudgetID: id,
		Items:           views,
		ItemCount:       len(items),
		TotalBudget:     total,
		FormattedTotal:  pricing.FormatCurrency(total, s.currency()),
	}
}

func (s *server) savedBudgetView(b history.SavedBudget) savedBudgetView {
	return savedBudgetView{
		SavedBudget:    b,
		FormattedTotal: pricing.FormatCurrency(b.TotalBudget, s.currency()),
	}
}

func (s *server) savedBudgetViews(list []history.SavedBudget) []savedBudgetView {
	out := make([]savedBudgetView, len(list))
	for i, b := range list {
		out[i] = s.savedBudgetView(b)
	}
	return out
}

func (s *server) settingsView() settingsView {
	return settingsView{Settings: s.settings.Get(), Persisted: s.settings.LastSaveSucceeded()}
}

package notebook

import (
	"time"

	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// notebookDoc is the JSON shape of a stored notebook.
type notebookDoc struct {
	ID             string     `json:"id"`
	Owner          string     `json:"owner"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle,omitempty"`
	StockCode      string     `json:"stock_code,omitempty"`
	CompanyName    string     `json:"company_name,omitempty"`
	InvestmentGoal string     `json:"investment_goal,omitempty"`
	RiskFactors    string     `json:"risk_factors,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Entries        []entryDoc `json:"entries,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type entryDoc struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toDoc(nb *domnb.Notebook) notebookDoc {
	entries := make([]entryDoc, 0, nb.EntryCount())
	for _, e := range nb.Entries() {
		entries = append(entries, entryDoc{
			ID:        e.ID(),
			Type:      string(e.Type()),
			Title:     e.Title(),
			Content:   e.Content(),
			Tags:      e.Tags(),
			CreatedAt: e.CreatedAt(),
		})
	}
	return notebookDoc{
		ID:             nb.ID(),
		Owner:          nb.Owner(),
		Title:          nb.Title(),
		Subtitle:       nb.Subtitle(),
		StockCode:      nb.StockCode(),
		CompanyName:    nb.CompanyName(),
		InvestmentGoal: nb.InvestmentGoal(),
		RiskFactors:    nb.RiskFactors(),
		Tags:           nb.Tags(),
		Entries:        entries,
		CreatedAt:      nb.CreatedAt(),
		UpdatedAt:      nb.UpdatedAt(),
	}
}

func (d *notebookDoc) toDomain() domnb.Notebook {
	entries := make([]domnb.Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, domnb.ReconstructEntry(
			e.ID, domnb.EntryType(e.Type), e.Title, e.Content, e.Tags, e.CreatedAt,
		))
	}
	return domnb.Reconstruct(d.ID, d.Owner, domnb.Attrs{
		Title:          d.Title,
		Subtitle:       d.Subtitle,
		StockCode:      d.StockCode,
		CompanyName:    d.CompanyName,
		InvestmentGoal: d.InvestmentGoal,
		RiskFactors:    d.RiskFactors,
		Tags:           d.Tags,
	}, entries, d.CreatedAt, d.UpdatedAt)
}

package search

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/usecase/analyzer"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(analyzer.New(zap.NewNop()), WithClock(func() time.Time { return testNow }))
}

func daysAgo(d int) time.Time { return testNow.Add(-time.Duration(d) * 24 * time.Hour) }

func toyotaNotebook() notebook.Notebook {
	entry := notebook.ReconstructEntry("e-1", notebook.EntryEarnings, "決算分析",
		"売上高は前年同期比10%増。配当利回りは2.8%で安定している。", []string{"決算分析"}, daysAgo(2))
	return notebook.Reconstruct("nb-toyota", "u1", notebook.Attrs{
		Title:          "トヨタ自動車 長期投資",
		Subtitle:       "EV戦略と配当政策",
		StockCode:      "7203",
		CompanyName:    "トヨタ自動車",
		InvestmentGoal: "安定した配当と長期的な成長",
		Tags:           []string{"高配当", "自動車", "長期投資"},
	}, []notebook.Entry{entry}, daysAgo(30), daysAgo(2))
}

func mufgNotebook() notebook.Notebook {
	return notebook.Reconstruct("nb-mufg", "u1", notebook.Attrs{
		Title:    "三菱UFJ 高配当投資",
		Subtitle: "配当重視投資",
		Tags:     []string{"高配当", "金融", "長期投資"},
	}, nil, daysAgo(60), daysAgo(40))
}

func sonyNotebook() notebook.Notebook {
	return notebook.Reconstruct("nb-sony", "u1", notebook.Attrs{
		Title:          "ソニー グロース分析",
		Subtitle:       "エンタメ事業の成長",
		InvestmentGoal: "ゲーム事業の拡大",
		Tags:           []string{"成長株", "IT"},
	}, nil, daysAgo(200), daysAgo(100))
}

func testCorpus() []notebook.Notebook {
	return []notebook.Notebook{sonyNotebook(), mufgNotebook(), toyotaNotebook()}
}

// fakeCorpus implements CorpusReader for tests.
type fakeCorpus struct {
	notebooks []notebook.Notebook
	err       error
}

func (f *fakeCorpus) Get(_ context.Context, owner, id string) (notebook.Notebook, error) {
	if f.err != nil {
		return notebook.Notebook{}, f.err
	}
	for _, nb := range f.notebooks {
		if nb.ID() == id && nb.Owner() == owner {
			return nb, nil
		}
	}
	return notebook.Notebook{}, domain.ErrNotebookNotFound
}

func (f *fakeCorpus) List(_ context.Context, owner string) ([]notebook.Notebook, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []notebook.Notebook
	for _, nb := range f.notebooks {
		if nb.Owner() == owner {
			out = append(out, nb)
		}
	}
	return out, nil
}

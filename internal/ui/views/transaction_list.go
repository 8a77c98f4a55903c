package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

type TransactionListView struct {
	lookup *Lookup
}

func NewTransactionListView(l *Lookup) *TransactionListView {
	return &TransactionListView{lookup: l}
}

func (v *TransactionListView) Render(details []*model.TransactionDetail, limit int) error {
	if len(details) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent transactions (limit: %d)", limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Account", "Category", "Description", "Amount"},
	}

	for _, d := range details {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", d.ID),
			d.Date.Format(constants.DateFormat),
			ui.TypeColor(d.Type, string(d.Type)),
			ui.TypeColor(d.Type, Counterpart(d, v.lookup)),
			v.lookup.Category(d.CategoryID),
			d.Description,
			ui.TypeColor(d.Type, v.lookup.Money(Amount(d))),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(details))
	return nil
}

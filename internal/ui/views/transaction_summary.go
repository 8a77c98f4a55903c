package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

func RenderTransactionSummary(detail *model.TransactionDetail, l *Lookup) error {
	pterm.DefaultSection.Println("Transaction Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Date", detail.Date.Format(constants.DateFormat)},
		{"Type", string(detail.Type)},
		{"Amount", l.Money(Amount(detail))},
		{"Description", detail.Description},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Splits (Double-Entry)")
	return RenderSplits(detail.Type, detail.Splits, l)
}

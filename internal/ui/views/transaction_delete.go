package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

func RenderTransactionDeletePreview(detail *model.TransactionDetail, l *Lookup) error {
	pterm.Warning.Printf("About to delete transaction #%d:\n", detail.ID)

	deletionInfo := pterm.TableData{
		{"Date", detail.Date.Format(constants.DateFormat)},
		{"Type", string(detail.Type)},
		{"Amount", l.Money(Amount(detail))},
		{"Account", Counterpart(detail, l)},
		{"Description", detail.Description},
		{"Splits", fmt.Sprint(len(detail.Splits))},
	}

	if err := pterm.DefaultTable.WithData(deletionInfo).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("Account balances will be restored. This action cannot be undone!")
	return nil
}

func RenderTransactionDeleteSuccess(id int64) {
	pterm.Success.Printf("Transaction #%d deleted successfully\n", id)
	ui.Separator()
}

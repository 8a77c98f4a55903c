package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

type AccountListView struct {
	currency string
}

func NewAccountListView(code string) *AccountListView {
	return &AccountListView{currency: code}
}

func (v *AccountListView) Render(accounts []*model.Account) error {
	headers := []string{"ID", "Name", "Kind", "Balance", "Status"}
	tableData := pterm.TableData{headers}

	for _, acc := range accounts {
		balance := currency.FormatMinor(acc.Balance, v.currency) + " " + v.currency
		status := "active"
		if acc.Archived {
			status = pterm.Gray("archived")
		}

		tableData = append(tableData, []string{
			pterm.Sprint(acc.ID),
			ui.KindColor(acc.Kind, acc.Name),
			ui.KindColor(acc.Kind, string(acc.Kind)),
			ui.KindColor(acc.Kind, balance),
			status,
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}

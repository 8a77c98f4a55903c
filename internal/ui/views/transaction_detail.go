package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

func RenderTransactionDetail(detail *model.TransactionDetail, l *Lookup) error {
	counterparty := "-"
	if detail.Counterparty != nil {
		counterparty = *detail.Counterparty
	}
	updated := "-"
	if detail.UpdatedBy != nil {
		updated = fmt.Sprintf("%s (%s)", *detail.UpdatedBy, detail.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", fmt.Sprintf("%d", detail.ID)},
		{"Type", ui.TypeColor(detail.Type, string(detail.Type))},
		{"Date", detail.Date.Format(constants.DateFormat)},
		{"Amount", l.Money(Amount(detail))},
		{"Description", detail.Description},
		{"Category", l.Category(detail.CategoryID)},
		{"Counterparty", counterparty},
		{"Created by", detail.CreatedBy},
		{"Updated by", updated},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Splits")
	return RenderSplits(detail.Type, detail.Splits, l)
}

func RenderSplits(txType model.TxType, splits []model.Split, l *Lookup) error {
	splitsData := pterm.TableData{
		{"Account", "Role", "Category", "Amount", "Direction"},
	}

	var total int64
	for _, split := range splits {
		splitsData = append(splitsData, []string{
			l.Account(split.AccountID),
			SplitRoleLabel(txType, split),
			l.Category(split.CategoryID),
			l.Money(split.Amount),
			string(split.Direction),
		})
		total += split.Amount
	}

	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(splitsData).
		Render(); err != nil {
		return err
	}

	if total != 0 {
		pterm.Warning.Printf("Splits do not balance (total = %s)\n", l.Money(total))
	}
	return nil
}

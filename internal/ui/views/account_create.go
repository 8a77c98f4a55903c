package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/ui"
)

func RenderAccountSuccess(acc *model.Account, code string) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Kind"), string(acc.Kind)},
		{pterm.Blue("Balance"), currency.FormatMinor(acc.Balance, code) + " " + code},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account created successfully!\n")
	return nil
}

func RenderBookList(books []*model.Book, current string) error {
	tableData := pterm.TableData{{"ID", "Name", "Currency", "Created"}}
	for _, b := range books {
		name := b.Name
		if b.ID == current || b.Name == current {
			name = pterm.Green(name + " *")
		}
		tableData = append(tableData, []string{b.ID, name, b.Currency, b.CreatedAt.Local().Format("2006-01-02")})
	}

	pterm.DefaultSection.Printf("Books")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderCategoryList(categories []*model.Category) error {
	tableData := pterm.TableData{{"ID", "Name", "Kind"}}
	for _, c := range categories {
		kind := pterm.Red(string(c.Kind))
		if c.Kind == model.CategoryIncome {
			kind = pterm.Green(string(c.Kind))
		}
		tableData = append(tableData, []string{fmt.Sprintf("%d", c.ID), c.Name, kind})
	}

	pterm.DefaultSection.Printf("Categories")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderDrifts(drifts []model.BalanceDrift, code string) error {
	tableData := pterm.TableData{{"Account", "Stored", "Expected", "Correction"}}
	for _, d := range drifts {
		tableData = append(tableData, []string{
			d.Name,
			currency.FormatMinor(d.Stored, code),
			currency.FormatMinor(d.Expected, code),
			currency.FormatMinor(d.Diff(), code),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

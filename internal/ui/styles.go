package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

// Separator prints a green separator line to the console.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}

// KindColor colors text by account kind: assets green, liabilities red,
// equity gray.
func KindColor(kind model.AccountKind, text string) string {
	switch kind {
	case model.KindAsset:
		return pterm.Green(text)
	case model.KindLiability:
		return pterm.Red(text)
	case model.KindEquity:
		return pterm.Gray(text)
	default:
		return text
	}
}

// TypeColor colors text by transaction type.
func TypeColor(t model.TxType, text string) string {
	switch t {
	case model.TxExpense:
		return pterm.Red(text)
	case model.TxIncome:
		return pterm.Green(text)
	case model.TxTransfer:
		return pterm.Blue(text)
	default:
		return text
	}
}

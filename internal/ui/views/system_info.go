package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath      string
	DBPath          string
	DBExists        bool // true = Found, false = Not Found
	DefaultCurrency string
	DefaultBook     string
	DefaultUser     string
	ServerAddr      string
	LogLevel        string
	Books           int
	AppDataDir      string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	book := data.DefaultBook
	if book == "" {
		book = "-"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Books", pterm.Sprint(data.Books)},
		{"Default Book", book},
		{"Default Currency", data.DefaultCurrency},
		{"Default User", data.DefaultUser},
		{"HTTP Address", data.ServerAddr},
		{"Log Level", data.LogLevel},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

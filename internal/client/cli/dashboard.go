package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wisataops/wisatacli/internal/client/models"
	"github.com/wisataops/wisatacli/internal/format"
)

// Menu prints the business menu the sidebar endpoint exposes for the
// current user, grouped by role prefix.
func (a *App) Menu(ctx context.Context) error {
	items, err := a.client.Sidebar(ctx)
	if err != nil {
		printlnFn("Failed to load menu:", err.Error())
		return err
	}
	if len(items) == 0 {
		printlnFn("No menu entries")
		return nil
	}

	byPrefix := map[string][]models.SidebarItem{}
	prefixes := []string{}
	for _, it := range items {
		if _, ok := byPrefix[it.Prefix]; !ok {
			prefixes = append(prefixes, it.Prefix)
		}
		byPrefix[it.Prefix] = append(byPrefix[it.Prefix], it)
	}

	for _, p := range prefixes {
		printlnFn(format.UcFirst(p) + ":")
		for _, it := range byPrefix[p] {
			printlnFn(fmt.Sprintf("  %-30s open %s %s", it.Name, it.Prefix, it.Slug))
		}
	}
	return nil
}

// Stats prints the dashboard statistics: roles, their menus and the income
// and outcome totals.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.client.Statistics(ctx)
	if err != nil {
		printlnFn("Failed to load statistics:", err.Error())
		return err
	}

	for _, role := range stats.Roles {
		name := role["name"]
		printlnFn(format.UcFirst(name))

		if totals, ok := stats.Summary[name]; ok {
			printlnFn("  Income: ", formatAmount(totals.TotalIncome))
			printlnFn("  Outcome:", formatAmount(totals.TotalOutcome))
		}
		for _, m := range stats.Menus[name] {
			printlnFn("  -", m.Name)
		}
	}
	return nil
}

// SysInfo prints the server's system-information block.
func (a *App) SysInfo(ctx context.Context) error {
	info, err := a.client.SystemInformation(ctx)
	if err != nil {
		printlnFn("Failed to load system information:", err.Error())
		return err
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := format.UcWords(strings.ReplaceAll(k, "_", " "))
		printlnFn(fmt.Sprintf("%-24s %s", label+":", info[k]))
	}
	return nil
}

// formatAmount renders a decimal string from the summary endpoint as
// rupiah. Unparseable values are shown as-is.
func formatAmount(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return format.FormatCurrency(f)
}

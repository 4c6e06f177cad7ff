package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTable writes header and rows aligned in columns, with a dashed rule
// under the header. Trailing whitespace is trimmed from each line.
func printTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func renderStores(w io.Writer, stores []types.Store, sel types.Selection) {
	if len(stores) == 0 {
		fmt.Fprintln(w, "No stores found.")
		return
	}
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		active := ""
		if sel.Selected && sel.StoreID == s.ID {
			active = "*"
		}
		rows = append(rows, []string{itoa(s.ID), s.Name, active})
	}
	printTable(w, []string{"ID", "NAME", "ACTIVE"}, rows)
	fmt.Fprintf(w, "Total: %d store(s)\n", len(stores))
}

func renderUniforms(w io.Writer, uniforms []types.Uniform) {
	if len(uniforms) == 0 {
		fmt.Fprintln(w, "No uniforms found.")
		return
	}
	rows := make([][]string, 0, len(uniforms))
	for _, u := range uniforms {
		rows = append(rows, []string{itoa(u.ID), u.Type, u.Size})
	}
	printTable(w, []string{"ID", "TYPE", "SIZE"}, rows)
	fmt.Fprintf(w, "Total: %d uniform(s)\n", len(uniforms))
}

func renderOperations(w io.Writer, records []types.OperationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No operations found.")
		return
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			itoa(r.ID),
			r.Date.String(),
			r.Type.String(),
			itoa(r.Quantity),
			r.Uniform.Type + " " + r.Uniform.Size,
			r.Store.Name,
			r.Concept,
		})
	}
	printTable(w, []string{"ID", "DATE", "TYPE", "QTY", "UNIFORM", "STORE", "CONCEPT"}, rows)
	fmt.Fprintf(w, "Total: %d operation(s)\n", len(records))
}

func renderOrphans(w io.Writer, orphans []types.OrphanedOperation) {
	if len(orphans) == 0 {
		fmt.Fprintln(w, "No orphaned operations.")
		return
	}
	rows := make([][]string, 0, len(orphans))
	for _, o := range orphans {
		rows = append(rows, []string{itoa(o.ID), itoa(o.StoreID), itoa(o.UniformID), o.Missing()})
	}
	printTable(w, []string{"ID", "STORE", "UNIFORM", "MISSING"}, rows)
	fmt.Fprintf(w, "Total: %d orphaned operation(s)\n", len(orphans))
}

func renderBalances(w io.Writer, store types.Store, balances []types.Balance) {
	fmt.Fprintf(w, "Stock at %s\n", store.Name)
	if len(balances) == 0 {
		fmt.Fprintln(w, "No stock movements recorded.")
		return
	}
	rows := make([][]string, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, []string{itoa(b.Uniform.ID), b.Uniform.Type, b.Uniform.Size, itoa(b.Quantity)})
	}
	printTable(w, []string{"ID", "TYPE", "SIZE", "QTY"}, rows)
}

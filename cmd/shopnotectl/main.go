// shopnotectl is a small command-line front end for the shopping-note API.
// It drives the same sync client the browser UI uses: list with local
// filters, add, toggle bought state, and delete with confirmation.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/danupratama/shopping-note/internal/client"
	"github.com/danupratama/shopping-note/internal/domain"
)

func main() {
	var serverURL string
	flag.StringVar(&serverURL, "server", envOr("SHOPNOTE_SERVER", "http://localhost:4000"), "base URL of the shopping-note server")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	mirror := client.NewMirror(client.New(serverURL), func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	ctx := context.Background()

	var err error
	switch args[0] {
	case "list":
		err = runList(ctx, mirror, args[1:])
	case "add":
		err = runAdd(ctx, mirror, args[1:])
	case "done":
		err = runToggle(ctx, mirror, args[1:])
	case "rm":
		err = runDelete(ctx, mirror, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: shopnotectl [-server URL] <command> [flags]

Commands:
  list   show the shopping list (flags: -q, -category, -hide-bought)
  add    add an item (flags: -name, -qty, -unit, -category, -priority, -note)
  done   toggle an item's bought state: done <id>
  rm     delete an item: rm [-y] <id>
`)
}

func runList(ctx context.Context, m *client.Mirror, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "free-text filter over name, category, and note")
	category := fs.String("category", "", "only show this category")
	hideBought := fs.Bool("hide-bought", false, "hide items already bought")
	_ = fs.Parse(args)

	if err := m.Load(ctx); err != nil {
		return err
	}

	m.SetQuery(*query)
	m.SetCategory(*category)
	m.SetShowBought(!*hideBought)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t \tNAME\tQTY\tCATEGORY\tPRIORITY\tNOTE")
	for _, item := range m.Visible() {
		mark := " "
		if item.Bought {
			mark = "x"
		}
		qty := strconv.Itoa(item.Quantity)
		if item.Unit != nil {
			qty += " " + *item.Unit
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, mark, item.Name, qty, deref(item.Category),
			priorityLabel(item.Priority), deref(item.Note))
	}
	return w.Flush()
}

func runAdd(ctx context.Context, m *client.Mirror, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "item name (required)")
	qty := fs.Int("qty", 1, "quantity (1-999)")
	unit := fs.String("unit", "", "unit, e.g. kg or pcs")
	category := fs.String("category", "", "category")
	priority := fs.Int("priority", domain.PriorityNormal, "priority: 1 high, 2 normal, 3 low")
	note := fs.String("note", "", "free-form note")
	_ = fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		fmt.Fprintln(os.Stderr, "add: -name is required")
		return fmt.Errorf("missing name")
	}

	req := client.ItemRequest{Name: name, Quantity: qty, Priority: priority}
	if *unit != "" {
		req.Unit = unit
	}
	if *category != "" {
		req.Category = category
	}
	if *note != "" {
		req.Note = note
	}

	_, err := m.Create(ctx, req)
	return err
}

func runToggle(ctx context.Context, m *client.Mirror, args []string) error {
	id, err := parseIDArg("done", args)
	if err != nil {
		return err
	}
	return m.Toggle(ctx, id)
}

func runDelete(ctx context.Context, m *client.Mirror, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	_ = fs.Parse(args)

	id, err := parseIDArg("rm", fs.Args())
	if err != nil {
		return err
	}

	if !*yes && !confirm(fmt.Sprintf("Delete item %d?", id)) {
		return nil
	}
	return m.Delete(ctx, id)
}

func parseIDArg(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "%s: expected exactly one item id\n", cmd)
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid item id %q\n", cmd, args[0])
		return 0, err
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func priorityLabel(p int) string {
	switch p {
	case domain.PriorityHigh:
		return "high"
	case domain.PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
)

// HeaderOutput is one catalog entry in the JSON output.
type HeaderOutput struct {
	Header int    `json:"header"`
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Class  string `json:"class"`
}

// headersCommand fetches and prints the header catalog.
func headersCommand(tab, filter string, asJSON bool) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	descs, err := client.Headers(ctx)
	if err != nil {
		return err
	}

	catalog := headers.Split(descs)

	var list []headers.Descriptor
	var title string
	switch strings.ToLower(tab) {
	case "":
		list = catalog.All
		title = "All headers"
	case "coin":
		list = catalog.TabList(headers.ClassCoin)
		title = "Coin"
	case "hopper":
		list = catalog.TabList(headers.ClassHopper)
		title = "Hopper"
	case "recycler", "bill":
		list = catalog.TabList(headers.ClassRecycler)
		title = "Recycler"
	case "all", "other":
		list = catalog.TabList(headers.ClassOther)
		title = "All / Other"
	default:
		return errors.New(errors.ErrValidate,
			"Unknown tab: "+tab,
			"Valid tabs: coin, hopper, recycler, all")
	}

	list = headers.Filter(list, filter)

	if asJSON {
		out := make([]HeaderOutput, 0, len(list))
		for _, d := range list {
			out = append(out, HeaderOutput{
				Header: d.Header,
				Hex:    d.Hex(),
				Name:   d.Name,
				Class:  headers.Classify(d).String(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(ui.BoldStyle.Render(fmt.Sprintf("%s (%d)", title, len(list))))
	if len(list) == 0 {
		fmt.Println(ui.MutedStyle.Render("  no matching headers"))
		return nil
	}

	columns := []ui.TableColumn{
		{Title: "Code", Width: 5},
		{Title: "Hex", Width: 6},
		{Title: "Name", Width: 40},
		{Title: "Class", Width: 10},
	}
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		class := headers.Classify(d).String()
		if headers.IsDanger(d) {
			class = "DANGER"
		}
		rows = append(rows, []string{
			strconv.Itoa(d.Header), d.Hex(), d.Name, class,
		})
	}
	fmt.Println(ui.RenderSimpleTable(columns, rows))

	return nil
}

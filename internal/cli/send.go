package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
)

// sendCommand validates the arguments and dispatches one command.
func sendCommand(destArg, headerArg, dataHex string) error {
	sel := dispatch.ParseSelection(destArg)
	if _, ok := sel.Address(); !ok {
		return errors.New(errors.ErrValidate,
			"Invalid destination address: "+destArg,
			"Device addresses are 0-255")
	}

	header, err := strconv.Atoi(headerArg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrValidate,
			"Invalid header: "+headerArg,
			"Command headers are decimal 0-255, e.g. 254 for simple poll")
	}
	if err := dispatch.ValidateHeader(header); err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	d := dispatch.New(client)

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	result, err := d.Dispatch(ctx, sel, header, dataHex)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", ui.SymbolSuccess, result.Message)
	return nil
}

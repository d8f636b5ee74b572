package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
)

// payoutCommand enables the hopper and dispenses coins for a euro amount.
func payoutCommand(destArg, amountArg string) error {
	sel := dispatch.ParseSelection(destArg)
	if _, ok := sel.Address(); !ok {
		return errors.New(errors.ErrValidate,
			"Invalid destination address: "+destArg,
			"Device addresses are 0-255")
	}

	amount, err := strconv.Atoi(amountArg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrValidate,
			"Invalid amount: "+amountArg,
			"Use a whole, even euro amount, e.g. 2 or 20")
	}
	data, err := dispatch.HopperPayoutData(amount)
	if err != nil {
		return err
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	d := dispatch.New(client)

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	if _, err := d.Dispatch(ctx, sel, headers.EnableHopper, ""); err != nil {
		return err
	}
	result, err := d.Dispatch(ctx, sel, headers.DispenseHopperCoins, data)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (%d coins)\n", ui.SymbolSuccess, result.Message, amount/2)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
)

// connectCommand opens the bridge's serial transport. Flags override the
// local config, which overrides the bridge's stored port/baud.
func connectCommand(port string, baud int) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	if port == "" {
		port = cfg.Serial.Port
	}
	if baud == 0 {
		baud = cfg.Serial.Baud
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	if port == "" {
		if bc, err := client.Config(ctx); err == nil {
			port = bc.Port
			if bc.Baud > 0 {
				baud = bc.Baud
			}
		}
	}

	if err := client.Connect(ctx, port, baud); err != nil {
		return err
	}

	label := "serial open"
	if port != "" {
		label = fmt.Sprintf("%s @ %d", port, baud)
	}
	fmt.Printf("%s %s\n", ui.SymbolSuccess, label)
	return nil
}

// disconnectCommand closes the bridge's serial transport.
func disconnectCommand() error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return err
	}

	fmt.Printf("%s serial closed\n", ui.SymbolSuccess)
	return nil
}

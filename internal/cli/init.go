package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/config"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
)

// initCommand creates a new .ccpanel.yaml configuration file.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	server := cfg.Server
	serialPort := cfg.Serial.Port

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bridge server URL").
				Description("The ccTalk bridge's HTTP address").
				Placeholder("http://127.0.0.1:5000").
				Value(&server).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil // keep the default
					}
					u, err := url.Parse(s)
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("use the form http://host:port")
					}
					return nil
				}),
			huh.NewInput().
				Title("Serial port").
				Description("Optional default for 'ccpanel connect' (e.g. /dev/ttyUSB0)").
				Value(&serialPort),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check the terminal supports interactive prompts")
	}

	if s := strings.TrimSpace(server); s != "" {
		cfg.Server = s
	}
	cfg.Serial.Port = strings.TrimSpace(serialPort)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config", "")
	}

	header := "# ccpanel configuration\n# See 'ccpanel --help' for usage.\n"
	if err := os.WriteFile(configPath, []byte(header+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+configPath,
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n", ui.SymbolSuccess, configPath)
	fmt.Println(ui.MutedStyle.Render("Run 'ccpanel console' to start the panel."))
	return nil
}

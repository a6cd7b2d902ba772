// Command controllertools discovers connected game controllers and reports
// their battery state.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jsphonorio/ControllerTools/internal/config"
	"github.com/jsphonorio/ControllerTools/internal/discovery"
)

var Version = "dev"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "controllertools",
		Short: "ControllerTools lists connected game controllers with battery status.",
		Long:  "ControllerTools discovers game controllers connected over USB or Bluetooth, removes duplicate enumeration records and resolves each controller's battery level and charging state through BlueZ, UPower and the controllers' own status reports.",
	}

	debugPtr := rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	jsonPtr := rootCmd.PersistentFlags().BoolP("json", "j", false, "Print the controller list as JSON")
	fakePtr := rootCmd.PersistentFlags().BoolP("fake", "f", false, "Inject the fake controller fixture if present")
	versionPtr := rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
		if *versionPtr {
			fmt.Printf("ControllerTools version %s\n", Version)
			return nil
		}

		conf, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if *debugPtr {
			conf.Debug = true
		}
		if *fakePtr {
			conf.Fixture.Enabled = true
		}

		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if conf.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}

		result := <-discovery.ControllersAsync(conf)
		if result.Err != nil {
			return result.Err
		}

		if *jsonPtr {
			data, err := json.MarshalIndent(result.Controllers, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(result.Controllers) == 0 {
			fmt.Println("No controllers found.")
			return nil
		}
		for _, c := range result.Controllers {
			transport := "USB"
			if c.Bluetooth {
				transport = "Bluetooth"
			}
			fmt.Printf("%-24s %4d%%  %-11s %s\n", c.Name, c.Capacity, c.Status.OrUnknown(), transport)
		}
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

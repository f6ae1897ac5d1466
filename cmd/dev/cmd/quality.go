package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"
)

func TestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run unit tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := test.Test()
			if err != nil {
				return fmt.Errorf("failed to run tests: %w", err)
			}
			return nil
		},
	}
	return cmd
}

func LintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run linting",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := test.Lint()
			if err != nil {
				return fmt.Errorf("failed to run linting: %w", err)
			}
			return nil
		},
	}
	return cmd
}

// HardwareTestCmd runs the tests tagged "hardware" against a hub wired to the
// host I2C bus.
func HardwareTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hardware-test",
		Short: "Run tests against a connected EP-0106 hub",
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := cmd.Flag("bus").Value.String()
			address := cmd.Flag("address").Value.String()
			slog.Info("running hardware tests", "bus", bus, "address", address)
			goTest := exec.CommandContext(cmd.Context(), "go", "test", "-count=1", "-tags", "hardware", "-run", "Hardware", "./hub/...")
			goTest.Env = append(os.Environ(), "SENSORHUB_BUS="+bus, "SENSORHUB_ADDRESS="+address)
			goTest.Stdout = os.Stdout
			goTest.Stderr = os.Stderr
			if err := goTest.Run(); err != nil {
				return fmt.Errorf("hardware tests failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("bus", "1", "host I2C bus the hub is connected to")
	cmd.Flags().String("address", "0x17", "hub I2C address")
	return cmd
}

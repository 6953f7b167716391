package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huskyto/rail/rail"
	"github.com/huskyto/rail/rasm"
)

// fibonacciImage is the built-in demo program bench runs against, matching
// the reference binary from the architecture's own test suite.
var fibonacciImage = []byte{
	0x40, 0x00, 0x01, 0x01, 0x40, 0x0B, 0x01, 0x0B, 0x40, 0x02, 0x00, 0x0A,
	0x00, 0x01, 0x02, 0x02, 0x40, 0x0A, 0x00, 0x01, 0x40, 0x02, 0x00, 0x0F,
	0x91, 0x02, 0x04, 0x00, 0x00, 0x0B, 0x04, 0x04, 0x26, 0x00, 0x00, 0x08,
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "rail",
		Short: "Assembler and virtual machine for the Rail 8-bit architecture",
	}

	rootCmd.AddCommand(newAssembleCmd(), newRunCmd(), newBenchCmd(), newHexCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAssembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assemble <source.rasm> <out.bin>",
		Short: "Assemble Rail source into a binary image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := rasm.AssembleFile(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], bin, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(bin), args[1])
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var steps int
	var delayMs int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run <program.bin>",
		Short: "Execute a Rail binary for a fixed number of steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			vm := rail.NewWithProgram(program)
			vm.SetIOPrint(!quiet)

			delay := time.Duration(delayMs) * time.Millisecond
			for i := 0; i < steps && !vm.IsHalted(); i++ {
				vm.Step()
				if delay > 0 {
					time.Sleep(delay)
				}
			}

			if vm.IsHalted() {
				fmt.Println("halted")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1000, "Number of instructions to execute")
	cmd.Flags().IntVar(&delayMs, "delay", 0, "Delay between steps, in milliseconds")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress IO-register output")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the built-in Fibonacci program and report elapsed time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := rail.NewWithProgram(fibonacciImage)
			vm.SetIOPrint(false)

			start := time.Now()
			vm.Run(steps)
			elapsed := time.Since(start)

			fmt.Printf("Ran %d steps in %s (%.0f steps/sec)\n", steps, elapsed, float64(steps)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 10_000_000, "Number of instructions to execute")
	return cmd
}

func newHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex <program.bin>",
		Short: "Render a binary image as groups of 4 hex bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			for i := 0; i < len(data); i += 4 {
				end := i + 4
				if end > len(data) {
					end = len(data)
				}
				for j := i; j < end; j++ {
					fmt.Printf("%02X ", data[j])
				}
				fmt.Println()
			}
			return nil
		},
	}
}

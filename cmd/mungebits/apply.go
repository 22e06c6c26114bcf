package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mungebits/internal/engine"
	"mungebits/internal/pipeline"
	"mungebits/plane"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply TRAIN.csv PREDICT.csv",
		Short: "Train a pipeline on one CSV and print predictions for another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("pipeline")
			format, _ := cmd.Flags().GetString("format")
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			runner, err := pipeline.Compile(path)
			if err != nil {
				return err
			}
			defer runner.Close()
			if err := engine.TrainFromCSV(runner, args[0]); err != nil {
				return err
			}

			fh, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer fh.Close()
			in, err := plane.ReadCSV(fh)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			out, err := runner.Predict(in)
			if err != nil {
				return err
			}
			f, ok := out.(*plane.Frame)
			if !ok {
				return fmt.Errorf("pipeline returned %T", out)
			}

			if format == "json" {
				b, err := plane.EncodeJSON(f)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			return plane.WriteCSV(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringP("pipeline", "p", "pipeline.yml", "Pipeline definition")
	cmd.Flags().StringP("format", "f", "csv", "Output format: csv|json")
	return cmd
}

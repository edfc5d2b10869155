package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskfront/internal/config"
	"taskfront/internal/openapi"
)

func newOpenAPICmd(cfg *config.Config) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document for the upstream task API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := openapi.New(cfg.APIURL)

			var (
				out []byte
				err error
			)
			switch strings.ToLower(strings.TrimSpace(outputFormat)) {
			case "", "yaml", "yml":
				out, err = doc.YAML()
			case "json":
				out, err = doc.JSON()
			default:
				return fmt.Errorf("unsupported format %q (use yaml or json)", outputFormat)
			}
			if err != nil {
				return err
			}
			_, err = stdout.Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "yaml", "output format (yaml or json)")
	return cmd
}

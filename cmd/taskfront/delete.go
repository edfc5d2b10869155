package main

import (
	"github.com/spf13/cobra"

	"taskfront/internal/api"
	"taskfront/internal/config"
)

type deleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

func newDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  requireOneTaskID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteTask(cmd.Context(), id); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(deleteResult{ID: id, Deleted: true})
				}
				return writePlain("deleted %d\n", id)
			})
		},
	}
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"taskfront/internal/api"
	"taskfront/internal/config"
	"taskfront/internal/models"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				tasks, err := client.ListTasks(cmd.Context())
				if err != nil {
					return err
				}
				tasks = filterByStatus(tasks, status)
				if *jsonOutput {
					return writeJSON(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "status filter (to do, in progress, complete)")
	return cmd
}

// filterByStatus keeps tasks whose status matches after normalization.
// The upstream list endpoint has no query filters.
func filterByStatus(tasks []models.Task, status string) []models.Task {
	if strings.TrimSpace(status) == "" {
		return tasks
	}
	want := models.NormalizeStatus(status)
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if models.NormalizeStatus(task.Status) == want {
			out = append(out, task)
		}
	}
	return out
}

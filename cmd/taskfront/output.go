package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"taskfront/internal/format"
	"taskfront/internal/models"
	"taskfront/internal/taskform"
)

var (
	outputFormatter format.Formatter = format.JSONFormatter{Indent: "  "}
	stdout          io.Writer        = os.Stdout
)

func writeJSON(payload any) error {
	return outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeTaskList(tasks []models.Task) error {
	if len(tasks) == 0 {
		return writePlain("no tasks\n")
	}
	for _, task := range tasks {
		if err := writePlain("%s\n", formatTaskLine(task)); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task models.Task) error {
	row := taskform.ToDisplayRow(task)
	lines := []string{
		fmt.Sprintf("id: %d", task.ID),
		fmt.Sprintf("title: %s", task.Title),
		fmt.Sprintf("status: %s", models.NormalizeStatus(task.Status)),
		fmt.Sprintf("due_date: %s", row.DueDate),
	}
	if task.CaseNumber != "" {
		lines = append(lines, fmt.Sprintf("case_number: %s", task.CaseNumber))
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatTaskLine(task models.Task) string {
	row := taskform.ToDisplayRow(task)
	return fmt.Sprintf("%d [%s] [due %s] - %s", task.ID, models.NormalizeStatus(task.Status), row.DueDate, task.Title)
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage your tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	RunE:  runTasksList,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksCreate,
}

var tasksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksGet,
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksComplete,
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDelete,
}

var taskDescription string

func init() {
	tasksCreateCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksGetCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
}

type taskResult struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type taskListResult struct {
	Tasks []taskResult `json:"tasks"`
	Total int          `json:"total"`
}

func runTasksList(cmd *cobra.Command, args []string) error {
	client := newClient()

	var result taskListResult
	if err := client.getJSON("/tasks", &result); err != nil {
		return err
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(result)
	}

	headers := []string{"ID", "Title", "Completed", "Created"}
	rows := make([][]string, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		rows = append(rows, []string{
			strconv.FormatUint(t.ID, 10),
			t.Title,
			strconv.FormatBool(t.IsCompleted),
			t.CreatedAt,
		})
	}
	printTable(headers, rows)
	fmt.Printf("\n%d task(s)\n", result.Total)
	return nil
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	client := newClient()

	var result taskResult
	err := client.postJSON("/tasks", map[string]string{
		"title":       args[0],
		"description": taskDescription,
	}, &result)
	if err != nil {
		return err
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(result)
	}
	fmt.Printf("Created task %d: %s\n", result.ID, result.Title)
	return nil
}

func runTasksGet(cmd *cobra.Command, args []string) error {
	client := newClient()

	var result taskResult
	if err := client.getJSON("/tasks/"+args[0], &result); err != nil {
		return err
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(result)
	}

	printTable([]string{"Field", "Value"}, [][]string{
		{"ID", strconv.FormatUint(result.ID, 10)},
		{"Title", result.Title},
		{"Description", result.Description},
		{"Completed", strconv.FormatBool(result.IsCompleted)},
		{"Created", result.CreatedAt},
		{"Updated", result.UpdatedAt},
	})
	return nil
}

func runTasksComplete(cmd *cobra.Command, args []string) error {
	client := newClient()

	completed := true
	var result taskResult
	err := client.putJSON("/tasks/"+args[0], map[string]any{
		"is_completed": completed,
	}, &result)
	if err != nil {
		return err
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(result)
	}
	fmt.Printf("Task %d marked as completed.\n", result.ID)
	return nil
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	client := newClient()

	if err := client.delete("/tasks/" + args[0]); err != nil {
		return err
	}
	fmt.Printf("Task %s deleted.\n", args[0])
	return nil
}

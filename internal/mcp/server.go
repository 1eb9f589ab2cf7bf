// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the md-task document operations as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"errors"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// Server wraps the task manager and exposes it as MCP tools.
type Server struct {
	server          *gomcp.Server
	taskMgr         core.TaskManager
	defaultPriority models.Priority
}

// NewServer creates a new MCP server. defaultPriority is used by add_task
// when the caller omits a priority.
func NewServer(taskMgr core.TaskManager, defaultPriority models.Priority, version string) *Server {
	if version == "" {
		version = "dev"
	}
	if defaultPriority == "" {
		defaultPriority = models.PriorityMedium
	}

	s := &Server{
		taskMgr:         taskMgr,
		defaultPriority: defaultPriority,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "md-task", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run serves MCP over stdio, blocking until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	Number   int    `json:"number"`
	State    string `json:"state"`
	Priority string `json:"priority"`
	Symbol   string `json:"symbol,omitempty"`
	Text     string `json:"text"`
}

type addTaskInput struct {
	Text     string `json:"text" jsonschema:"the task description"`
	Priority string `json:"priority,omitempty" jsonschema:"task priority: high, medium or low. Defaults to the configured default priority."`
}

type listTasksInput struct {
	IncludeCompleted bool `json:"include_completed,omitempty" jsonschema:"also return done and archived tasks"`
}

type listTasksOutput struct {
	Pending  []taskOutput `json:"pending"`
	Done     []taskOutput `json:"done,omitempty"`
	Archived []taskOutput `json:"archived,omitempty"`
	Count    int          `json:"count"`
}

type numberInput struct {
	Number int `json:"number" jsonschema:"the 1-based task number as shown by list_tasks"`
}

type archiveTaskInput struct {
	Number int  `json:"number,omitempty" jsonschema:"the 1-based completed-task number to archive"`
	All    bool `json:"all,omitempty" jsonschema:"archive every completed task of the active section"`
}

type archiveTaskOutput struct {
	Message  string `json:"message"`
	Archived int    `json:"archived"`
}

type formatTasksInput struct{}

type formatTasksOutput struct {
	Message  string `json:"message"`
	Modified bool   `json:"modified"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Add a pending task to the end of the active task list.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List pending tasks with their numbers. Optionally include done and archived tasks.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Mark the pending task with the given number as done.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "remove_task",
		Description: "Delete the pending task with the given number.",
	}, s.handleRemoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "archive_task",
		Description: "Move a completed task, or all completed tasks with all=true, into the archive section.",
	}, s.handleArchiveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "format_tasks",
		Description: "Normalize the task document into its canonical layout.",
	}, s.handleFormatTasks)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	priority := s.defaultPriority
	if input.Priority != "" {
		p, err := core.ParsePriority(input.Priority)
		if err != nil {
			return errorResult(err.Error()), taskOutput{}, nil
		}
		priority = p
	}

	task, err := s.taskMgr.AddTask(input.Text, priority)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	list, err := s.taskMgr.ListTasks()
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{Pending: tasksToOutput(list.Pending)}
	out.Count = len(out.Pending)
	if input.IncludeCompleted {
		out.Done = tasksToOutput(list.Done)
		out.Archived = tasksToOutput(list.Archived)
		out.Count += len(out.Done) + len(out.Archived)
	}
	return nil, out, nil
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input numberInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Number < 1 {
		return errorResult("number must be 1 or greater"), taskOutput{}, nil
	}
	task, err := s.taskMgr.CompleteTask(input.Number)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleRemoveTask(_ context.Context, _ *gomcp.CallToolRequest, input numberInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Number < 1 {
		return errorResult("number must be 1 or greater"), taskOutput{}, nil
	}
	task, err := s.taskMgr.RemoveTask(input.Number)
	if err != nil {
		return errorResult(err.Error()), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleArchiveTask(_ context.Context, _ *gomcp.CallToolRequest, input archiveTaskInput) (*gomcp.CallToolResult, archiveTaskOutput, error) {
	if input.All {
		n, err := s.taskMgr.ArchiveAll()
		if err != nil {
			return errorResult(err.Error()), archiveTaskOutput{}, nil
		}
		return nil, archiveTaskOutput{
			Message:  fmt.Sprintf("%d completed task(s) archived", n),
			Archived: n,
		}, nil
	}

	if input.Number < 1 {
		return errorResult("either number (1 or greater) or all=true is required"), archiveTaskOutput{}, nil
	}
	task, err := s.taskMgr.ArchiveTask(input.Number)
	if err != nil {
		if errors.Is(err, core.ErrCompletedTaskNotFound) {
			return errorResult(fmt.Sprintf("completed task %d not found", input.Number)), archiveTaskOutput{}, nil
		}
		return errorResult(err.Error()), archiveTaskOutput{}, nil
	}
	return nil, archiveTaskOutput{
		Message:  fmt.Sprintf("task archived: %s", task.Text),
		Archived: 1,
	}, nil
}

func (s *Server) handleFormatTasks(_ context.Context, _ *gomcp.CallToolRequest, _ formatTasksInput) (*gomcp.CallToolResult, formatTasksOutput, error) {
	modified, err := s.taskMgr.Format()
	if err != nil {
		return errorResult(err.Error()), formatTasksOutput{}, nil
	}
	msg := "document already formatted"
	if modified {
		msg = "document formatted"
	}
	return nil, formatTasksOutput{Message: msg, Modified: modified}, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		Number:   t.Number,
		State:    string(t.State),
		Priority: string(t.Priority),
		Symbol:   t.Priority.Glyph(),
		Text:     t.Text,
	}
}

func tasksToOutput(tasks []models.Task) []taskOutput {
	out := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		out[i] = taskToOutput(t)
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/app"
	"github.com/harukisoda/project-manager/internal/domain"
	"github.com/harukisoda/project-manager/internal/usecase"
)

// ToolHandler dispatches MCP tool calls to the application use cases.
type ToolHandler struct {
	container *app.Container
	sessionID string
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(c *app.Container, sessionID string) *ToolHandler {
	return &ToolHandler{container: c, sessionID: sessionID}
}

// Handle dispatches a tool call to the appropriate handler.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "ticket_create":
		return h.handleCreate(ctx, args)
	case "ticket_get":
		return h.handleGet(ctx, args)
	case "ticket_list":
		return h.handleList(ctx, args)
	case "ticket_update":
		return h.handleUpdate(ctx, args)
	case "ticket_change_status":
		return h.handleChangeStatus(ctx, args)
	case "ticket_delete":
		return h.handleDelete(ctx, args)
	case "ticket_search":
		return h.handleSearch(ctx, args)
	case "ticket_stats":
		return h.handleStats(ctx)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// ticketView is the JSON shape returned for a single ticket.
type ticketView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Type        string `json:"type"`
	Privacy     string `json:"privacy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toView(t *domain.Ticket) ticketView {
	rec := t.ToRecord()
	return ticketView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Priority:    rec.Priority,
		Type:        rec.Type,
		Privacy:     rec.Privacy,
		CreatedAt:   rec.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt:   rec.UpdatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func toViews(tickets []*domain.Ticket) []ticketView {
	views := make([]ticketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, toView(t))
	}
	return views
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func (h *ToolHandler) handleCreate(ctx context.Context, args map[string]any) (any, error) {
	title := stringArg(args, "title")
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	description := stringArg(args, "description")
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	out, err := h.container.CreateTicketUseCase().Execute(ctx, usecase.CreateTicketInput{
		Title:       title,
		Description: description,
		Priority:    stringArg(args, "priority"),
		Type:        stringArg(args, "type"),
		Privacy:     stringArg(args, "privacy"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"ticket": toView(out.Ticket)}, nil
}

func (h *ToolHandler) handleGet(ctx context.Context, args map[string]any) (any, error) {
	id := stringArg(args, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	out, err := h.container.GetTicketUseCase().Execute(ctx, usecase.GetTicketInput{ID: id})
	if err != nil {
		return nil, err
	}
	return map[string]any{"ticket": toView(out.Ticket)}, nil
}

func (h *ToolHandler) handleList(ctx context.Context, args map[string]any) (any, error) {
	includeArchived, _ := args["include_archived"].(bool)

	out, err := h.container.ListTicketsUseCase().Execute(ctx, usecase.ListTicketsInput{
		IncludeArchived: includeArchived,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"tickets": toViews(out.Tickets),
		"count":   len(out.Tickets),
	}, nil
}

func (h *ToolHandler) handleUpdate(ctx context.Context, args map[string]any) (any, error) {
	id := stringArg(args, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	out, err := h.container.UpdateTicketUseCase().Execute(ctx, usecase.UpdateTicketInput{
		ID:          id,
		Title:       stringArg(args, "title"),
		Description: stringArg(args, "description"),
		Priority:    stringArg(args, "priority"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"ticket": toView(out.Ticket)}, nil
}

func (h *ToolHandler) handleChangeStatus(ctx context.Context, args map[string]any) (any, error) {
	id := stringArg(args, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	status := stringArg(args, "status")
	if status == "" {
		return nil, fmt.Errorf("status is required")
	}

	out, err := h.container.ChangeStatusUseCase().Execute(ctx, usecase.ChangeStatusInput{
		ID:     id,
		Status: status,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"ticket": toView(out.Ticket)}, nil
}

func (h *ToolHandler) handleDelete(ctx context.Context, args map[string]any) (any, error) {
	id := stringArg(args, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	if err := h.container.DeleteTicketUseCase().Execute(ctx, usecase.DeleteTicketInput{ID: id}); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": id}, nil
}

func (h *ToolHandler) handleSearch(ctx context.Context, args map[string]any) (any, error) {
	out, err := h.container.SearchTicketsUseCase().Execute(ctx, usecase.SearchTicketsInput{
		Title:    stringArg(args, "title"),
		Search:   stringArg(args, "search"),
		Status:   stringArg(args, "status"),
		Priority: stringArg(args, "priority"),
		Type:     stringArg(args, "type"),
		Privacy:  stringArg(args, "privacy"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"tickets": toViews(out.Tickets),
		"count":   len(out.Tickets),
	}, nil
}

func (h *ToolHandler) handleStats(ctx context.Context) (any, error) {
	out, err := h.container.TicketStatsUseCase().Execute(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int, len(out.Stats.ByStatus))
	for k, v := range out.Stats.ByStatus {
		byStatus[string(k)] = v
	}
	byPriority := make(map[string]int, len(out.Stats.ByPriority))
	for k, v := range out.Stats.ByPriority {
		byPriority[string(k)] = v
	}
	byType := make(map[string]int, len(out.Stats.ByType))
	for k, v := range out.Stats.ByType {
		byType[string(k)] = v
	}

	return map[string]any{
		"total":      out.Stats.Total,
		"byStatus":   byStatus,
		"byPriority": byPriority,
		"byType":     byType,
	}, nil
}

// schema helpers for tool definitions.

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

// toolDefinitions returns every tool this server exposes.
func toolDefinitions() []Tool {
	statuses := []string{"pending", "in_progress", "completed", "archived"}
	priorities := []string{"high", "medium", "low"}
	types := []string{"feature", "bug", "task"}
	privacies := []string{"local-only", "shareable", "public"}

	return []Tool{
		{
			Name:        "ticket_create",
			Description: "Create a new ticket. Status starts as pending; priority defaults to medium, type to task, privacy to local-only.",
			InputSchema: objectSchema(map[string]any{
				"title":       stringProp("Ticket title (1-200 characters after trimming)"),
				"description": stringProp("Ticket description (1-2000 characters after trimming)"),
				"priority":    enumProp("Ticket priority", priorities...),
				"type":        enumProp("Kind of work", types...),
				"privacy":     enumProp("Sharing level", privacies...),
			}, "title", "description"),
		},
		{
			Name:        "ticket_get",
			Description: "Fetch a single ticket by id.",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Ticket id"),
			}, "id"),
		},
		{
			Name:        "ticket_list",
			Description: "List tickets. Archived tickets are hidden unless include_archived is true.",
			InputSchema: objectSchema(map[string]any{
				"include_archived": map[string]any{"type": "boolean", "description": "Also return archived tickets"},
			}),
		},
		{
			Name:        "ticket_update",
			Description: "Update a ticket's title, description, or priority. Omitted fields are left unchanged.",
			InputSchema: objectSchema(map[string]any{
				"id":          stringProp("Ticket id"),
				"title":       stringProp("New title"),
				"description": stringProp("New description"),
				"priority":    enumProp("New priority", priorities...),
			}, "id"),
		},
		{
			Name:        "ticket_change_status",
			Description: "Move a ticket through its lifecycle: pending → in_progress → completed, with archiving allowed from pending and in_progress. Completed and archived are terminal.",
			InputSchema: objectSchema(map[string]any{
				"id":     stringProp("Ticket id"),
				"status": enumProp("Target status", statuses...),
			}, "id", "status"),
		},
		{
			Name:        "ticket_delete",
			Description: "Permanently delete a ticket.",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Ticket id"),
			}, "id"),
		},
		{
			Name:        "ticket_search",
			Description: "Search tickets. All provided criteria are combined with AND; empty criteria return everything.",
			InputSchema: objectSchema(map[string]any{
				"title":    stringProp("Case-insensitive substring match on title"),
				"search":   stringProp("Case-insensitive substring match on title or description"),
				"status":   enumProp("Exact status", statuses...),
				"priority": enumProp("Exact priority", priorities...),
				"type":     enumProp("Exact type", types...),
				"privacy":  enumProp("Exact privacy level", privacies...),
			}),
		},
		{
			Name:        "ticket_stats",
			Description: "Aggregate ticket counts by status, priority, and type.",
			InputSchema: objectSchema(map[string]any{}),
		},
	}
}

package api

import (
	"context"
	"fmt"

	"github.com/oan-pulse/pulse/internal/model"
)

// Catalog listings. Every collection GET comes back wrapped as
// {"items": [...]}.

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var envelope itemsEnvelope[model.Project]
	if err := c.get(ctx, "/projects/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// ListTasks fetches all tasks. The form layer filters them by project.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var envelope itemsEnvelope[model.Task]
	if err := c.get(ctx, "/tasks/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// ListClients fetches all clients.
func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var envelope itemsEnvelope[model.Client]
	if err := c.get(ctx, "/clients/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// ListUsers fetches all user accounts (admin view).
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var envelope itemsEnvelope[model.User]
	if err := c.get(ctx, "/users/", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var out model.Project
	err := c.post(ctx, "/projects/", p, &out)
	return out, err
}

// UpdateProject replaces a project.
func (c *Client) UpdateProject(ctx context.Context, id int64, p model.Project) (model.Project, error) {
	var out model.Project
	err := c.put(ctx, fmt.Sprintf("/projects/%d", id), p, &out)
	return out, err
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d", id))
}

// CreateTask creates a task under a project.
func (c *Client) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	var out model.Task
	err := c.post(ctx, "/tasks/", t, &out)
	return out, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/tasks/%d", id))
}

// CreateClient creates a client record.
func (c *Client) CreateClient(ctx context.Context, cl model.Client) (model.Client, error) {
	var out model.Client
	err := c.post(ctx, "/clients/", cl, &out)
	return out, err
}

// DeleteClient removes a client record.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/clients/%d", id))
}

// CreateUser creates a user account (admin only).
func (c *Client) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := c.post(ctx, "/users/", u, &out)
	return out, err
}

// UpdateUser replaces a user account (admin only).
func (c *Client) UpdateUser(ctx context.Context, id int64, u model.User) (model.User, error) {
	var out model.User
	err := c.put(ctx, fmt.Sprintf("/users/%d", id), u, &out)
	return out, err
}

// DeleteUser removes a user account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mww/club_ladder/model"
)

const maxNameLength = 64

func (c *controller) CreateUser(ctx context.Context, username, displayName string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, invalidInputf("username must be provided")
	}
	if len(username) > maxNameLength || strings.ContainsAny(username, " \t\n") {
		return nil, invalidInputf("username is not valid: '%s'", username)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}
	if len(displayName) > maxNameLength {
		return nil, invalidInputf("display name can be at most %d characters", maxNameLength)
	}

	u := &model.User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
	}
	if err := c.db.AddUser(ctx, u); err != nil {
		return nil, fmt.Errorf("error adding user: %w", err)
	}
	return u, nil
}

func (c *controller) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := c.db.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return u, nil
}

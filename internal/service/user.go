package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/userhub-io/userhub-server/internal/logger"
	"github.com/userhub-io/userhub-server/internal/model"
)

// User implements the user store: typed CRUD over the user document
// collection, enforcing the document validity invariant on every
// create, read and update. Absence is reported through the ok return
// value; only validation and storage failures travel the error path.
type User struct {
	documents model.DocumentStore
	logger    *logger.Logger
	now       func() time.Time
}

// NewUser creates a new user store over the given document collection.
func NewUser(documents model.DocumentStore, logger *logger.Logger) *User {
	return &User{
		documents: documents,
		logger:    logger,
		now:       time.Now,
	}
}

// Create assembles a full user record from params, filling defaults for
// unset optional fields, validates it and writes it at key uid. An
// existing record at the same uid is overwritten. The returned record
// is the in-memory constructed value, not a re-read.
func (s *User) Create(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	now := model.FormatTime(s.now())

	user := model.User{
		UID:         params.UID,
		Email:       params.Email,
		DisplayName: params.DisplayName,
		PhotoURL:    params.PhotoURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    params.Metadata,
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	if err := user.Validate(); err != nil {
		return model.User{}, err
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := s.documents.Set(ctx, user.UID, doc); err != nil {
		return model.User{}, fmt.Errorf("failed to store user: %w", err)
	}

	s.logger.Info("User service: user created", "uid", user.UID)

	return user, nil
}

// Get reads the user stored at uid. Absence is reported as ok=false; a
// present document that fails the validity invariant is a
// *model.ValidationError, never a partially filled record.
func (s *User) Get(ctx context.Context, uid string) (model.User, bool, error) {
	raw, err := s.documents.Get(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user: %w", err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return model.User{}, false, err
	}

	return user, true, nil
}

// Update merges the supplied fields over the stored record and always
// refreshes updatedAt. The stored result is re-read and re-validated
// before being returned. A missing record is ok=false and no write is
// performed; update never creates.
func (s *User) Update(ctx context.Context, uid string, params model.UpdateUserParams) (model.User, bool, error) {
	_, err := s.documents.Get(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user: %w", err)
	}

	patch := buildPatch(params, model.FormatTime(s.now()))
	patchDoc, err := json.Marshal(patch)
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to marshal patch: %w", err)
	}

	err = s.documents.Merge(ctx, uid, patchDoc)
	if errors.Is(err, model.ErrNotFound) {
		// Deleted between the read and the merge.
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to merge user: %w", err)
	}

	raw, err := s.documents.Get(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user after update: %w", err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return model.User{}, false, err
	}

	s.logger.Info("User service: user updated", "uid", uid)

	return user, true, nil
}

// Delete removes the user stored at uid. Returns false when no record
// exists; deleting twice returns true then false.
func (s *User) Delete(ctx context.Context, uid string) (bool, error) {
	_, err := s.documents.Get(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.documents.Delete(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted", "uid", uid)

	return true, nil
}

// decodeUser unmarshals a stored document and checks the validity
// invariant. Malformed or type-mismatched documents are validation
// failures, distinguishing storage corruption from legitimate absence.
func decodeUser(raw json.RawMessage) (model.User, error) {
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return model.User{}, model.NewValidationError(fmt.Sprintf("malformed user document: %v", err))
	}
	if err := user.Validate(); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// buildPatch collects the supplied fields of a partial update into a
// top-level merge document. updatedAt is always refreshed.
func buildPatch(params model.UpdateUserParams, updatedAt string) map[string]any {
	patch := map[string]any{
		"updatedAt": updatedAt,
	}
	if params.Email != nil {
		patch["email"] = *params.Email
	}
	if params.DisplayName != nil {
		patch["displayName"] = *params.DisplayName
	}
	if params.PhotoURL != nil {
		patch["photoURL"] = *params.PhotoURL
	}
	if params.IsActive != nil {
		patch["isActive"] = *params.IsActive
	}
	if params.Metadata != nil {
		patch["metadata"] = params.Metadata
	}
	return patch
}

package service

import (
	"context"
	"fmt"
	"io"

	"github.com/userhub-io/userhub-server/internal/logger"
	"github.com/userhub-io/userhub-server/internal/model"
)

// Avatar stores user avatar images in object storage and points the
// user's photoURL at the uploaded object.
type Avatar struct {
	storage model.Storage
	users   *User
	logger  *logger.Logger
}

// NewAvatar creates a new avatar service.
func NewAvatar(storage model.Storage, users *User, logger *logger.Logger) *Avatar {
	return &Avatar{
		storage: storage,
		users:   users,
		logger:  logger,
	}
}

// SetAvatar uploads the image for an existing user and patches the
// user's photoURL. Returns ok=false when no user exists at uid; nothing
// is uploaded in that case.
func (s *Avatar) SetAvatar(ctx context.Context, uid string, reader io.Reader, size int64, contentType string) (model.User, bool, error) {
	_, found, err := s.users.Get(ctx, uid)
	if err != nil {
		return model.User{}, false, err
	}
	if !found {
		return model.User{}, false, nil
	}

	key := fmt.Sprintf("avatars/%s%s", uid, extensionFor(contentType))
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return model.User{}, false, fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.storage.URL(key)
	user, found, err := s.users.Update(ctx, uid, model.UpdateUserParams{PhotoURL: &url})
	if err != nil {
		return model.User{}, false, err
	}

	s.logger.Info("Avatar service: avatar stored", "uid", uid, "key", key)

	return user, found, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

package blobstore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"cooked/config"
	"cooked/internal/domain/entity"
	"cooked/internal/domain/repository"
	"cooked/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// sessionRepository stores one object per session key under a prefix.
type sessionRepository struct {
	bucket *blob.Bucket
	prefix string
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(bucket *blob.Bucket, prefix string) repository.SessionRepository {
	return &sessionRepository{bucket: bucket, prefix: prefix}
}

// NewSessionRepositoryFromConfig wires the repository from configuration.
func NewSessionRepositoryFromConfig(bucket *blob.Bucket, cfg *config.Config) repository.SessionRepository {
	return NewSessionRepository(bucket, cfg.Session.KeyPrefix)
}

// Save writes the token last so an interrupted save reads back as corrupt
// rather than as a session with stale fields.
func (r *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session without token")
	}

	roles, err := json.Marshal(session.Roles.ToStrings())
	if err != nil {
		return errors.WithStack(err)
	}

	values := []struct {
		key   string
		value string
	}{
		{repository.KeyUsername, session.Username},
		{repository.KeyUserRoles, string(roles)},
		{repository.KeyStatus, session.Status},
		{repository.KeyUserID, strconv.FormatInt(session.UserID, 10)},
		{repository.KeyEmail, session.Email},
		{repository.KeyAuthToken, session.Token},
	}

	for _, kv := range values {
		if err := r.bucket.WriteAll(ctx, r.prefix+kv.key, []byte(kv.value), nil); err != nil {
			return errors.Wrapf(err, "write %s", kv.key)
		}
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	values := make(map[string]string, len(repository.SessionKeys))
	for _, key := range repository.SessionKeys {
		data, err := r.bucket.ReadAll(ctx, r.prefix+key)
		if gcerrors.Code(err) == gcerrors.NotFound {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", key)
		}
		values[key] = string(data)
	}

	if len(values) == 0 {
		return nil, nil
	}

	token := strings.TrimSpace(values[repository.KeyAuthToken])
	if token == "" {
		return nil, errors.Wrap(repository.ErrSessionCorrupt, "missing token")
	}

	session := &entity.Session{
		Token:    token,
		Username: values[repository.KeyUsername],
		Status:   values[repository.KeyStatus],
		Email:    values[repository.KeyEmail],
	}

	if raw := values[repository.KeyUserID]; raw != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(repository.ErrSessionCorrupt, "userId %q", raw)
		}
		session.UserID = id
	}

	if raw := values[repository.KeyUserRoles]; raw != "" {
		var roles []string
		if err := json.Unmarshal([]byte(raw), &roles); err != nil {
			return nil, errors.Wrapf(repository.ErrSessionCorrupt, "userRoles: %v", err)
		}
		session.Roles = entity.RolesFromStrings(roles)
	}

	return session, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range repository.SessionKeys {
		err := r.bucket.Delete(ctx, r.prefix+key)
		if err == nil || gcerrors.Code(err) == gcerrors.NotFound {
			continue
		}
		if firstErr == nil {
			firstErr = errors.Wrapf(err, "delete %s", key)
		}
	}

	return firstErr
}

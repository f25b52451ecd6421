package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"
)

type firestoreConfigRepository struct {
	client *firestore.Client
}

func NewFirestoreConfigRepository(client *firestore.Client) repository.ConfigRepository {
	return &firestoreConfigRepository{
		client: client,
	}
}

func (r *firestoreConfigRepository) Set(ctx context.Context, key, value string) error {
	entry := entity.ConfigEntry{Key: key, Value: value}

	_, err := r.client.Collection("bot_config").Doc(key).Set(ctx, &entry)
	if err != nil {
		return errors.Internal("Failed to save config", err)
	}

	return nil
}

func (r *firestoreConfigRepository) Get(ctx context.Context, key string) (string, error) {
	doc, err := r.client.Collection("bot_config").Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", errors.Internal("Failed to get config", err)
	}

	var entry entity.ConfigEntry
	if err := doc.DataTo(&entry); err != nil {
		return "", errors.Internal("Failed to parse config data", err)
	}

	return entry.Value, nil
}

func (r *firestoreConfigRepository) GetAll(ctx context.Context) (map[string]string, error) {
	iter := r.client.Collection("bot_config").Documents(ctx)
	defer iter.Stop()

	values := make(map[string]string)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list config", err)
		}

		var entry entity.ConfigEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, errors.Internal("Failed to parse config data", err)
		}
		values[entry.Key] = entry.Value
	}

	return values, nil
}

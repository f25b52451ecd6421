package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/pkg/errors"

	"github.com/google/uuid"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	product.NameLower = strings.ToLower(product.Name)
	product.CreatedAt = time.Now()

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, name string) error {
	doc, err := r.findByNameLower(ctx, strings.ToLower(name))
	if err != nil {
		return err
	}

	if _, err := doc.Ref.Delete(ctx); err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	doc, err := r.findByNameLower(ctx, strings.ToLower(name))
	if err != nil {
		return nil, err
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	iter := r.client.Collection("products").OrderBy("nameLower", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.findByNameLower(ctx, strings.ToLower(name))
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *firestoreProductRepository) findByNameLower(ctx context.Context, nameLower string) (*firestore.DocumentSnapshot, error) {
	query := r.client.Collection("products").Where("nameLower", "==", nameLower).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Product", nil)
		}
		return nil, errors.Internal("Failed to query product", err)
	}

	return doc, nil
}

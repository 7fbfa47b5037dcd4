// internal/adapters/out/firestore/cart_service_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	appsession "atelier/internal/application/session"
	cartdom "atelier/internal/domain/cart"
)

// CartServiceFS implements the cart collaborator against the cart_lines
// read-model collection, for deployments where the storefront reads
// Firestore directly instead of going through the mall API.
//
// Collection design:
// - collection: cart_lines
// - one doc per raw line (no grouping server-side; the session groups)
// - fields: userId, variantId, color, size, unitPrice, quantity,
//   productName, productId, image
type CartServiceFS struct {
	Client *firestore.Client

	// CartLinesCol overrides the collection name (default "cart_lines").
	CartLinesCol string
}

func NewCartServiceFS(client *firestore.Client) *CartServiceFS {
	return &CartServiceFS{
		Client:       client,
		CartLinesCol: "cart_lines",
	}
}

type cartLineDoc struct {
	UserID      string `firestore:"userId"`
	VariantID   string `firestore:"variantId"`
	Color       string `firestore:"color"`
	Size        string `firestore:"size"`
	UnitPrice   int64  `firestore:"unitPrice"`
	Quantity    int    `firestore:"quantity"`
	ProductName string `firestore:"productName"`
	ProductID   string `firestore:"productId"`
	Image       string `firestore:"image"`
}

func (s *CartServiceFS) col() *firestore.CollectionRef {
	name := strings.TrimSpace(s.CartLinesCol)
	if name == "" {
		name = "cart_lines"
	}
	return s.Client.Collection(name)
}

// ListCart returns the raw line records for the user, in document order.
func (s *CartServiceFS) ListCart(ctx context.Context, userID string) ([]cartdom.BackendLine, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_service_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_service_fs: userID is empty")
	}

	it := s.col().Where("userId", "==", uid).Documents(ctx)
	defer it.Stop()

	var out []cartdom.BackendLine
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return []cartdom.BackendLine{}, nil
			}
			return nil, fmt.Errorf("cart_service_fs: list: %w", err)
		}

		var doc cartLineDoc
		if err := snap.DataTo(&doc); err != nil {
			// one unreadable doc must not sink the whole listing
			continue
		}

		price := doc.UnitPrice
		out = append(out, cartdom.BackendLine{
			VariantID:   doc.VariantID,
			Color:       doc.Color,
			Size:        doc.Size,
			UnitPrice:   &price,
			Quantity:    doc.Quantity,
			ProductName: doc.ProductName,
			ProductID:   doc.ProductID,
			Image:       doc.Image,
		})
	}
	return out, nil
}

// AddLine appends one raw line doc (no server-side merge; grouping is local).
func (s *CartServiceFS) AddLine(ctx context.Context, userID, productID string, qty int, color, size string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_service_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" || qty <= 0 {
		return errors.New("cart_service_fs: invalid add line arguments")
	}

	_, _, err := s.col().Add(ctx, cartLineDoc{
		UserID:    uid,
		VariantID: pid,
		ProductID: pid,
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
		Quantity:  qty,
	})
	if err != nil {
		return fmt.Errorf("cart_service_fs: add line: %w", err)
	}
	return nil
}

// RemoveLine deletes every doc matching all four discriminators.
func (s *CartServiceFS) RemoveLine(ctx context.Context, userID, productID, color, size string, unitPrice int64) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_service_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return errors.New("cart_service_fs: invalid remove line arguments")
	}

	q := s.col().
		Where("userId", "==", uid).
		Where("productId", "==", pid).
		Where("color", "==", strings.TrimSpace(color)).
		Where("size", "==", strings.TrimSpace(size)).
		Where("unitPrice", "==", unitPrice)

	return s.deleteMatching(ctx, q, "remove line")
}

// Clear deletes every line doc for the user.
func (s *CartServiceFS) Clear(ctx context.Context, userID string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_service_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_service_fs: userID is empty")
	}

	return s.deleteMatching(ctx, s.col().Where("userId", "==", uid), "clear")
}

func (s *CartServiceFS) deleteMatching(ctx context.Context, q firestore.Query, op string) error {
	it := q.Documents(ctx)
	defer it.Stop()

	batch := s.Client.Batch()
	n := 0
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("cart_service_fs: %s query: %w", op, err)
		}
		batch.Delete(snap.Ref)
		n++
	}

	if n == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("cart_service_fs: %s commit: %w", op, err)
	}
	return nil
}

var _ appsession.CartService = (*CartServiceFS)(nil)

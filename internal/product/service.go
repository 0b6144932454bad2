package product

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type recordStore interface {
	Put(ctx context.Context, p Product) error
	Get(ctx context.Context, id string) (Product, error)
	Delete(ctx context.Context, id string) error
	ScanAll(ctx context.Context) ([]Product, error)
}

type objectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Service coordinates product records with their image objects.
//
// Image writes always complete before the record write that references
// them, so a stored record never points at a key that was not yet written.
// There is no per-id locking: concurrent writes to the same id are a
// last-writer-wins race.
type Service struct {
	records recordStore
	objects objectStore
	logg    *zap.Logger
}

// NewService constructs a product service.
func NewService(records recordStore, objects objectStore, logg *zap.Logger) *Service {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Service{records: records, objects: objects, logg: logg}
}

// Create validates the input, stores the optional image, persists the new
// record and returns it along with a signed image URL (nil without image).
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, *string, error) {
	if strings.TrimSpace(in.Name) == "" || in.Quantity == "" || in.Price == "" {
		return Product{}, nil, ErrMissingFields
	}

	quantity, price, err := parseAmounts(in.Quantity, in.Price)
	if err != nil {
		return Product{}, nil, err
	}

	p := Product{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Quantity: quantity,
		Price:    price,
	}

	if in.File != nil {
		key := imageKey(p.ID, in.File.Filename)
		if err := s.storeImage(ctx, key, in.File); err != nil {
			return Product{}, nil, err
		}
		p.ImageKey = &key
	}

	if err := s.records.Put(ctx, p); err != nil {
		if p.ImageKey != nil {
			// best effort: do not leave an orphaned object behind
			if rmErr := s.objects.Remove(ctx, *p.ImageKey); rmErr != nil {
				s.logg.Warn("remove image after failed record write",
					zap.String("key", *p.ImageKey), zap.Error(rmErr))
			}
		}
		return Product{}, nil, err
	}

	url, err := s.signFor(ctx, p.ImageKey)
	if err != nil {
		return Product{}, nil, err
	}
	return p, url, nil
}

// Update merges the supplied fields into the stored record. A new image
// replaces the previous object under a fresh key; without one the stored
// key and object are left untouched.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Product, *string, error) {
	p, err := s.records.Get(ctx, id)
	if err != nil {
		return Product{}, nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = *in.Name
	}
	if in.Quantity != nil || in.Price != nil {
		quantityStr := strconv.FormatInt(p.Quantity, 10)
		priceStr := strconv.FormatFloat(p.Price, 'f', -1, 64)
		if in.Quantity != nil {
			quantityStr = *in.Quantity
		}
		if in.Price != nil {
			priceStr = *in.Price
		}
		quantity, price, err := parseAmounts(quantityStr, priceStr)
		if err != nil {
			return Product{}, nil, err
		}
		p.Quantity = quantity
		p.Price = price
	}

	if in.File != nil {
		if p.ImageKey != nil {
			// Removal failure must not abort the update; the stale object
			// becomes an orphan at worst.
			if err := s.objects.Remove(ctx, *p.ImageKey); err != nil {
				s.logg.Warn("remove stale image",
					zap.String("key", *p.ImageKey), zap.Error(err))
			}
		}
		key := imageKey(p.ID, in.File.Filename)
		if err := s.storeImage(ctx, key, in.File); err != nil {
			return Product{}, nil, err
		}
		p.ImageKey = &key
	}

	if err := s.records.Put(ctx, p); err != nil {
		return Product{}, nil, err
	}

	url, err := s.signFor(ctx, p.ImageKey)
	if err != nil {
		return Product{}, nil, err
	}
	return p, url, nil
}

// List returns every record, decorating those with an image key with a
// signed read URL. URLs are signed concurrently; the result order is
// whatever the underlying scan yields.
func (s *Service) List(ctx context.Context) ([]Listed, error) {
	products, err := s.records.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Listed, len(products))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range products {
		out[i] = Listed{Product: p}
		if p.ImageKey == nil {
			continue
		}
		i, key := i, *p.ImageKey
		g.Go(func() error {
			url, err := s.objects.PresignedGetURL(gctx, key)
			if err != nil {
				return fmt.Errorf("sign url for %s: %w", key, err)
			}
			out[i].ImageURL = &url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record and, when present, its image object. An unknown
// id is a successful no-op. The record goes first; if the object removal
// then fails the orphaned blob is unreachable and this flow cannot recover
// it.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.records.Get(ctx, id)
	if err != nil {
		if err == ErrProductNotFound {
			return nil
		}
		return err
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}

	if p.ImageKey != nil {
		if err := s.objects.Remove(ctx, *p.ImageKey); err != nil {
			return fmt.Errorf("remove image: %w", err)
		}
	}
	return nil
}

func (s *Service) storeImage(ctx context.Context, key string, fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	if err := s.objects.Put(ctx, key, file, fileHeader.Size, detectContentType(fileHeader)); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return nil
}

func (s *Service) signFor(ctx context.Context, key *string) (*string, error) {
	if key == nil {
		return nil, nil
	}
	url, err := s.objects.PresignedGetURL(ctx, *key)
	if err != nil {
		return nil, fmt.Errorf("sign url for %s: %w", *key, err)
	}
	return &url, nil
}

// imageKey derives the object key for an upload. The nanosecond timestamp
// guarantees successive uploads for the same product never share a key.
func imageKey(id, filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s/%d%s", id, time.Now().UnixNano(), ext)
}

func parseAmounts(quantityStr, priceStr string) (int64, float64, error) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(quantityStr), 10, 64)
	if err != nil || quantity < 0 {
		return 0, 0, ErrInvalidNumber
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	if err != nil || price < 0 {
		return 0, 0, ErrInvalidNumber
	}
	return quantity, price, nil
}

func detectContentType(fileHeader *multipart.FileHeader) string {
	if fileHeader == nil {
		return "application/octet-stream"
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

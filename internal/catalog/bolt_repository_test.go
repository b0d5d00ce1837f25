package catalog

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mobileriadardania/storefront/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func newTestBolt(t *testing.T) *BoltRepository {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))
	repo, err := OpenBoltRepository(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenBoltRepository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBoltRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestBolt(t)

	in := domain.Product{
		Title:          "Sofa Roma",
		Images:         []string{"1.jpg", "2.jpg"},
		Category:       "living",
		Features:       []string{"washable covers"},
		Specifications: map[string]string{"width": "220cm"},
	}
	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ParseID(created.ID); err != nil {
		t.Fatalf("created id %q is not an ObjectID", created.ID)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("Get = %+v, want %+v", got, created)
	}

	replaced, err := repo.Replace(ctx, created.ID, domain.Product{Title: "Sofa Roma II", Images: []string{}})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, _ = repo.Get(ctx, created.ID)
	if !reflect.DeepEqual(got, replaced) {
		t.Fatalf("after replace Get = %+v, want %+v", got, replaced)
	}
	if got.Category != "" || got.Features != nil || got.Specifications != nil {
		t.Fatalf("replace must drop omitted fields: %+v", got)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestBoltRepositoryMissingAndMalformedIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestBolt(t)
	absent := NewID()

	if _, err := repo.Get(ctx, absent); err != ErrNotFound {
		t.Fatalf("Get absent = %v", err)
	}
	if _, err := repo.Get(ctx, "nope"); err != ErrInvalidID {
		t.Fatalf("Get malformed = %v", err)
	}
	if _, err := repo.Replace(ctx, absent, domain.Product{Title: "x"}); err != ErrNotFound {
		t.Fatalf("Replace absent = %v", err)
	}
	if _, err := repo.Replace(ctx, "nope", domain.Product{Title: "x"}); err != ErrNotFound {
		t.Fatalf("Replace malformed = %v", err)
	}
	if err := repo.Delete(ctx, absent); err != ErrNotFound {
		t.Fatalf("Delete absent = %v", err)
	}
	if err := repo.Delete(ctx, "nope"); err != ErrNotFound {
		t.Fatalf("Delete malformed = %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("List = %v, %v; replace of an absent id must not create it", items, err)
	}
}

func TestBoltRepositoryListOrderAndDrop(t *testing.T) {
	ctx := context.Background()
	repo := newTestBolt(t)
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		p, err := repo.Create(ctx, domain.Product{Title: title})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, p.ID)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, p := range items {
		if p.ID != ids[i] {
			t.Fatalf("List order: got %s at %d, want %s", p.ID, i, ids[i])
		}
		if p.Images == nil {
			t.Fatalf("images must decode as empty list")
		}
	}

	if err := repo.Drop(ctx); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if items, _ := repo.List(ctx); len(items) != 0 {
		t.Fatalf("List after drop = %d items", len(items))
	}
	if _, err := repo.Get(ctx, ids[0]); err != ErrNotFound {
		t.Fatalf("Get after drop = %v", err)
	}
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
}

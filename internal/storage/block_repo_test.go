package storage

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
)

func seedPage(t *testing.T, db *sql.DB, docID, pageID string, pageNum int) {
	t.Helper()
	err := NewPageRepo(db).Insert(context.Background(), &PageRecord{
		ID:         pageID,
		DocumentID: docID,
		PageNum:    pageNum,
	})
	if err != nil {
		t.Fatalf("seed page: %v", err)
	}
}

func TestBlockRepo_InsertAndGet(t *testing.T) {
	db := newTestDB(t)
	seedDocument(t, db, "job-1", "doc-1")
	seedPage(t, db, "doc-1", "page-1", 0)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	block := &BlockRecord{
		ID:         "block-1",
		DocumentID: "doc-1",
		PageID:     "page-1",
		BlockID:    "/page/0/Text/1",
		BlockType:  "Text",
		Text:       "Hello World",
		HTML:       "<p>Hello World</p>",
		Images:     map[string]string{"fig1.png": "/data/ocr/job-1/images/fig1.png"},
		BBox:       []float64{10, 20, 110, 40},
		Polygon:    [][]float64{{10, 20}, {110, 20}, {110, 40}, {10, 40}},
		SectionHierarchy: map[string]string{
			"1": "/page/0/SectionHeader/0",
		},
	}
	if err := repo.Insert(ctx, block); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "block-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.BlockID != "/page/0/Text/1" || got.BlockType != "Text" {
		t.Errorf("block identity = %q/%q, want /page/0/Text/1 / Text", got.BlockID, got.BlockType)
	}
	if got.Text != "Hello World" {
		t.Errorf("text = %q, want Hello World", got.Text)
	}
	if !reflect.DeepEqual(got.Images, block.Images) {
		t.Errorf("images = %v, want %v", got.Images, block.Images)
	}
	if !reflect.DeepEqual(got.BBox, block.BBox) {
		t.Errorf("bbox = %v, want %v", got.BBox, block.BBox)
	}
	if !reflect.DeepEqual(got.Polygon, block.Polygon) {
		t.Errorf("polygon = %v, want %v", got.Polygon, block.Polygon)
	}
	if !reflect.DeepEqual(got.SectionHierarchy, block.SectionHierarchy) {
		t.Errorf("section_hierarchy = %v, want %v", got.SectionHierarchy, block.SectionHierarchy)
	}
}

func TestBlockRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlockRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestBlockRepo_ListByPage(t *testing.T) {
	db := newTestDB(t)
	seedDocument(t, db, "job-1", "doc-1")
	seedPage(t, db, "doc-1", "page-1", 0)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	ids := []string{"block-1", "block-2", "block-3"}
	for _, id := range ids {
		block := &BlockRecord{
			ID:         id,
			DocumentID: "doc-1",
			PageID:     "page-1",
			BlockType:  "Text",
			Text:       id,
		}
		if err := repo.Insert(ctx, block); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	blocks, err := repo.ListByPage(ctx, "page-1")
	if err != nil {
		t.Fatalf("ListByPage() error = %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("ListByPage() returned %d blocks, want 3", len(blocks))
	}
	// Blocks come back in insertion order
	for i, block := range blocks {
		if block.ID != ids[i] {
			t.Errorf("blocks[%d].ID = %s, want %s", i, block.ID, ids[i])
		}
	}
}

func TestBlockRepo_ListByIDs(t *testing.T) {
	db := newTestDB(t)
	seedDocument(t, db, "job-1", "doc-1")
	seedPage(t, db, "doc-1", "page-1", 0)
	repo := NewBlockRepo(db)
	ctx := context.Background()

	for _, id := range []string{"block-1", "block-2"} {
		block := &BlockRecord{ID: id, DocumentID: "doc-1", PageID: "page-1", Text: id}
		if err := repo.Insert(ctx, block); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	got, err := repo.ListByIDs(ctx, []string{"block-1", "block-2", "missing"})
	if err != nil {
		t.Fatalf("ListByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListByIDs() returned %d blocks, want 2", len(got))
	}
	if got["block-1"] == nil || got["block-2"] == nil {
		t.Errorf("ListByIDs() missing expected keys: %v", got)
	}

	empty, err := repo.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListByIDs(nil) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByIDs(nil) returned %d blocks, want 0", len(empty))
	}
}

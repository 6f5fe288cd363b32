package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Save(ctx, "user-1", "resume.txt", strings.NewReader("Go engineer with SQL"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.SizeBytes != int64(len("Go engineer with SQL")) {
		t.Fatalf("unexpected size %d", obj.SizeBytes)
	}
	if !strings.HasPrefix(obj.MimeType, "text/plain") {
		t.Fatalf("unexpected mime type %q", obj.MimeType)
	}
	if !strings.HasSuffix(obj.Key, "_resume.txt") {
		t.Fatalf("unexpected key %q", obj.Key)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		t.Fatalf("read: %v", err)
	}
	_ = rc.Close()
	if buf.String() != "Go engineer with SQL" {
		t.Fatalf("unexpected content %q", buf.String())
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, obj.Key); err == nil {
		t.Fatalf("expected open after delete to fail")
	}
	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestPing(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

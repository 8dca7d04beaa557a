package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/folio/backend/internal/repository"
)

func TestMutationErr_Classifies(t *testing.T) {
	if err := mutationErr("delete", "advice", "a1", nil); err != nil {
		t.Errorf("nil error should stay nil, got %v", err)
	}

	err := mutationErr("delete", "advice", "a1", repository.ErrNotFound)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "advice" || nf.ID != "a1" {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		t.Error("NotFoundError should match repository.ErrNotFound")
	}

	cause := errors.New("deadlock")
	err = mutationErr("approve", "advice", "a1", cause)
	var merr *MutationError
	if !errors.As(err, &merr) || !errors.Is(err, cause) {
		t.Errorf("expected MutationError wrapping cause, got %v", err)
	}
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "required", "email": "invalid"}}
	want := "validation failed: email: invalid, name: required"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestPlainText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"<b>bold</b> move", "bold move"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<img src=x onerror=alert()>", ""},
		{"&lt;b&gt;x&lt;/b&gt;", "x"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;hi", "hi"},
		{"&amp;lt;i&amp;gt;nested&amp;lt;/i&amp;gt;", "nested"},
		{"a < b", "a < b"},
	}
	for _, tc := range cases {
		if got := plainText(tc.in); got != tc.want {
			t.Errorf("plainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlainText_NeverReturnsMarkup(t *testing.T) {
	in := "&lt;script&gt;x&lt;/script&gt;"
	for i := 0; i < 12; i++ {
		in = strings.ReplaceAll(in, "&", "&amp;")
	}
	if got := plainText(in); strings.Contains(got, "<") {
		t.Errorf("plainText(%q) = %q, contains markup", in, got)
	}
}

func TestPage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, defaultPageSize, 0},
		{10, 5, 10, 5},
		{500, -1, maxPageSize, 0},
	}
	for _, tc := range cases {
		l, o := page(tc.limit, tc.offset)
		if l != tc.wantLimit || o != tc.wantOffset {
			t.Errorf("page(%d,%d) = %d,%d", tc.limit, tc.offset, l, o)
		}
	}
}

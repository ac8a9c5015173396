package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/ditaspace/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "empty edits",
			edits:      nil,
			contentLen: 10,
		},
		{
			name: "valid edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hello"},
				{StartOffset: 5, EndOffset: 10, NewText: "world"},
			},
			contentLen: 10,
		},
		{
			name:       "negative start offset",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "start offset is negative",
		},
		{
			name:       "end before start",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 3}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "end offset is before start offset",
		},
		{
			name:       "end exceeds content length",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 15}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "exceeds content length",
		},
		{
			name:       "insertion at end",
			edits:      []fix.TextEdit{{StartOffset: 10, EndOffset: 10, NewText: "!"}},
			contentLen: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, tt.contentLen)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateEdits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var validationErr *fix.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 20, EndOffset: 25},
		{StartOffset: 5, EndOffset: 9},
		{StartOffset: 5, EndOffset: 7},
		{StartOffset: 0, EndOffset: 2},
	}

	fix.SortEdits(edits)

	want := [][2]int{{0, 2}, {5, 7}, {5, 9}, {20, 25}}
	for i, w := range want {
		if edits[i].StartOffset != w[0] || edits[i].EndOffset != w[1] {
			t.Errorf("edits[%d] = [%d:%d], want [%d:%d]",
				i, edits[i].StartOffset, edits[i].EndOffset, w[0], w[1])
		}
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr bool
	}{
		{
			name: "adjacent edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
		},
		{
			name: "gap between edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 3},
				{StartOffset: 7, EndOffset: 10},
			},
		},
		{
			name: "overlapping edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 6},
				{StartOffset: 5, EndOffset: 10},
			},
			wantErr: true,
		},
		{
			name: "nested edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10},
				{StartOffset: 2, EndOffset: 4},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.DetectConflicts(tt.edits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectConflicts() error = %v, wantErr %v", err, tt.wantErr)
			}

			var conflictErr *fix.ConflictError
			if tt.wantErr && !errors.As(err, &conflictErr) {
				t.Errorf("expected ConflictError, got %T", err)
			}
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorts without touching input", func(t *testing.T) {
		t.Parallel()

		input := []fix.TextEdit{
			{StartOffset: 8, EndOffset: 10, NewText: "b"},
			{StartOffset: 0, EndOffset: 2, NewText: "a"},
		}

		got, err := fix.PrepareEdits(input, 10)
		if err != nil {
			t.Fatalf("PrepareEdits() error = %v", err)
		}
		if got[0].StartOffset != 0 || got[1].StartOffset != 8 {
			t.Errorf("PrepareEdits() not sorted: %+v", got)
		}
		if input[0].StartOffset != 8 {
			t.Error("PrepareEdits() modified its input")
		}
	})

	t.Run("rejects invalid range", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{{StartOffset: 0, EndOffset: 20}}, 10)
		if err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("rejects overlap", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{
			{StartOffset: 4, EndOffset: 8},
			{StartOffset: 0, EndOffset: 5},
		}, 10)
		if err == nil {
			t.Error("expected conflict error")
		}
	})
}

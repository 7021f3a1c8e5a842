package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateComment(t *testing.T) {
	if err := ValidateComment(""); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected empty comment error, got %v", err)
	}
	if err := ValidateComment(strings.Repeat("好", MaxCommentLength)); err != nil {
		t.Fatalf("limit is counted in runes, got %v", err)
	}
	if err := ValidateComment(strings.Repeat("a", MaxCommentLength+1)); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected too long error, got %v", err)
	}
}

func TestAvatar_StableForAuthorID(t *testing.T) {
	a := Comment{AuthorID: 3}.Avatar()
	b := Comment{AuthorID: 13}.Avatar()
	if a != b {
		t.Fatalf("avatar should wrap modulo table size: %q vs %q", a, b)
	}
	if (Comment{AuthorID: -3}).Avatar() != (Comment{AuthorID: -13}).Avatar() {
		t.Fatalf("negative ids should wrap modulo table size too")
	}
	for _, id := range []int{-1, math.MinInt, math.MaxInt} {
		if (Comment{AuthorID: id}).Avatar() == "" {
			t.Fatalf("expected an avatar for id %d", id)
		}
	}
}

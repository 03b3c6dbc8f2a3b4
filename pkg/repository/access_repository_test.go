package repository

import "testing"

func TestAccessRepository(t *testing.T) {
	repo := NewAccessRepository()

	if repo.IsGranted(5) {
		t.Fatal("fresh repository must grant no one")
	}

	repo.Grant(5)

	if !repo.IsGranted(5) {
		t.Fatal("expected user 5 granted")
	}
	if repo.IsGranted(6) {
		t.Fatal("grant must not leak to other users")
	}
}

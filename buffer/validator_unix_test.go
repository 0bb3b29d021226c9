// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

package buffer

import (
	"os"
	"testing"
)

func TestFDValidator(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	h := &Handle{ID: 1, FD: int(r.Fd())}
	v := FDValidator{}
	if !v.Valid(h) {
		t.Fatal("open descriptor reported invalid")
	}
	r.Close()
	if v.Valid(h) {
		t.Error("closed descriptor reported valid")
	}
	if v.Valid(&Handle{FD: -1}) {
		t.Error("negative descriptor reported valid")
	}
}

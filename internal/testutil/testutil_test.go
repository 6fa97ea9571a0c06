package testutil

import (
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestAssertNoError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_NO_ERROR_FAIL") == "1" {
		AssertNoError(t, errors.New("boom"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertNoError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_NO_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is non-nil")
	}
}

func TestAssertError(t *testing.T) {
	t.Parallel()
	AssertError(t, errors.New("test error"))
}

func TestAssertError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_ERROR_FAIL") == "1" {
		AssertError(t, nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is nil")
	}
}

func TestFlatGrid(t *testing.T) {
	t.Parallel()
	cloud := FlatGrid(0, 0, 10, 0.5, 1.5, 1.0)
	if cloud.NumVertices() == 0 {
		t.Fatal("expected non-empty cloud")
	}
	for _, p := range cloud.Positions {
		if p[2] != 1.5 {
			t.Fatalf("z = %v, want 1.5", p[2])
		}
	}
}

func TestBowlGrid(t *testing.T) {
	t.Parallel()
	cloud := BowlGrid(0, 0, 4, 0.2, 0.5, 0.3, 1.0)
	minZ := 0.0
	for _, p := range cloud.Positions {
		if p[2] < minZ {
			minZ = p[2]
		}
	}
	if minZ >= 0 {
		t.Fatal("expected at least one depressed vertex")
	}
}

func TestCShapeGrid(t *testing.T) {
	t.Parallel()
	cloud := CShapeGrid(5, 4, 0.2, 0, 90)
	if cloud.NumVertices() == 0 {
		t.Fatal("expected non-empty ring")
	}
}

package fn

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

// --- Result ---

func TestOkAndErr(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatal("Ok should be ok")
	}
	v, err := r.Unwrap()
	if v != 42 || err != nil {
		t.Fatal("wrong unwrap")
	}

	e := Err[int](errors.New("fail"))
	if e.IsOk() || !e.IsErr() {
		t.Fatal("Err should be err")
	}
}

func TestErrf(t *testing.T) {
	r := Errf[string]("code %d", 404)
	_, err := r.Unwrap()
	if err == nil || err.Error() != "code 404" {
		t.Fatal("Errf wrong message")
	}
}

func TestUnwrapOr(t *testing.T) {
	if Ok(1).UnwrapOr(9) != 1 {
		t.Fatal("should return value")
	}
	if Err[int](errors.New("x")).UnwrapOr(9) != 9 {
		t.Fatal("should return fallback")
	}
}

func TestFromPair(t *testing.T) {
	if FromPair(5, nil).IsErr() {
		t.Fatal("nil error should be ok")
	}
	if FromPair(0, errors.New("x")).IsOk() {
		t.Fatal("non-nil error should be err")
	}
}

func TestCollect(t *testing.T) {
	all := Collect([]Result[int]{Ok(1), Ok(2)})
	v, _ := all.Unwrap()
	if len(v) != 2 || v[0] != 1 || v[1] != 2 {
		t.Fatalf("wrong collect: %v", v)
	}

	bad := Collect([]Result[int]{Ok(1), Err[int](errors.New("boom"))})
	if bad.IsOk() {
		t.Fatal("collect with error should fail")
	}
}

// --- Stages ---

func TestThenShortCircuits(t *testing.T) {
	double := func(_ context.Context, n int) Result[int] { return Ok(n * 2) }
	fail := func(_ context.Context, _ int) Result[int] { return Errf[int]("nope") }
	toStr := func(_ context.Context, n int) Result[string] { return Ok(strconv.Itoa(n)) }

	if v, _ := Then(double, toStr)(context.Background(), 21).Unwrap(); v != "42" {
		t.Fatalf("expected 42, got %v", v)
	}

	if r := Then(fail, toStr)(context.Background(), 1); r.IsOk() {
		t.Fatal("error should short-circuit")
	}
}

func TestPipeline(t *testing.T) {
	inc := func(_ context.Context, n int) Result[int] { return Ok(n + 1) }
	r := Pipeline(inc, inc, inc)(context.Background(), 0)
	if v, _ := r.Unwrap(); v != 3 {
		t.Fatalf("expected 3, got %d", v)
	}
}

func TestBatchStagePreservesOrder(t *testing.T) {
	toStr := MapStage(strconv.Itoa)
	r := BatchStage(4, toStr)(context.Background(), []int{3, 1, 2})
	v, err := r.Unwrap()
	if err != nil {
		t.Fatal(err)
	}
	if v[0] != "3" || v[1] != "1" || v[2] != "2" {
		t.Fatalf("order lost: %v", v)
	}
}

func TestTapStagePassesThrough(t *testing.T) {
	var seen int
	tap := TapStage(func(_ context.Context, n int) { seen = n })
	r := tap(context.Background(), 7)
	if v, _ := r.Unwrap(); v != 7 || seen != 7 {
		t.Fatal("tap should observe and pass through")
	}
}

// --- Parallel ---

func TestParMapResultPreservesOrder(t *testing.T) {
	results := ParMapResult([]int{1, 2, 3, 4}, 2, func(n int) Result[int] { return Ok(n * n) })
	for i, r := range results {
		want := (i + 1) * (i + 1)
		if v, _ := r.Unwrap(); v != want {
			t.Fatalf("index %d: expected %d, got %d", i, want, v)
		}
	}
}

func TestParMapResultCollectsErrors(t *testing.T) {
	results := ParMapResult([]int{1, 2, 3}, 2, func(n int) Result[int] {
		if n == 2 {
			return Errf[int]("bad %d", n)
		}
		return Ok(n)
	})
	if Collect(results).IsOk() {
		t.Fatal("expected error to surface")
	}
}

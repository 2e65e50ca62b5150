package errcodes_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stratis/internal/dbusapi"
	"stratis/internal/errcodes"
)

type countingSource struct {
	calls   atomic.Int32
	entries []dbusapi.CodeEntry
	err     error
	gate    chan struct{}
}

func (s *countingSource) GetErrorCodes(ctx context.Context) ([]dbusapi.CodeEntry, error) {
	s.calls.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func sampleEntries() []dbusapi.CodeEntry {
	return []dbusapi.CodeEntry{
		{Name: errcodes.OK, Code: 0, Description: "Ok"},
		{Name: errcodes.GenericError, Code: 1, Description: "A general error happened"},
		{Name: errcodes.PoolNotFound, Code: 7, Description: "Pool not found"},
		{Name: errcodes.VolumeNotFound, Code: 8, Description: "Volume not found"},
		{Name: errcodes.AlreadyExists, Code: 11, Description: "Already exists"},
	}
}

func TestCodeForAndDescribeAreInverse(t *testing.T) {
	src := &countingSource{entries: sampleEntries()}
	cat := errcodes.New(src)
	ctx := context.Background()

	for _, entry := range sampleEntries() {
		code, err := cat.CodeFor(ctx, entry.Name)
		if err != nil {
			t.Fatalf("CodeFor(%s): %v", entry.Name, err)
		}
		name, desc, err := cat.Describe(ctx, code)
		if err != nil {
			t.Fatalf("Describe(%d): %v", code, err)
		}
		if name != entry.Name || desc != entry.Description {
			t.Fatalf("Describe(CodeFor(%s)) = (%s, %s), want (%s, %s)", entry.Name, name, desc, entry.Name, entry.Description)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected one fetch, got %d", got)
	}
}

func TestUnknownLookups(t *testing.T) {
	cat := errcodes.New(&countingSource{entries: sampleEntries()})
	ctx := context.Background()

	if _, err := cat.CodeFor(ctx, "STRATIS_NOPE"); !errors.Is(err, errcodes.ErrUnknownName) {
		t.Fatalf("expected ErrUnknownName, got %v", err)
	}
	if _, _, err := cat.Describe(ctx, 999); !errors.Is(err, errcodes.ErrUnknownCode) {
		t.Fatalf("expected ErrUnknownCode, got %v", err)
	}
}

func TestConcurrentFirstUseFetchesOnce(t *testing.T) {
	src := &countingSource{entries: sampleEntries(), gate: make(chan struct{})}
	cat := errcodes.New(src)

	const callers = 32
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cat.CodeFor(context.Background(), errcodes.PoolNotFound)
			errs <- err
		}()
	}

	// Let the callers pile up behind the in-flight fetch.
	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("CodeFor: %v", err)
		}
	}
	for i := 0; i < 10; i++ {
		if _, err := cat.Entries(context.Background()); err != nil {
			t.Fatalf("Entries: %v", err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one GetErrorCodes call, got %d", got)
	}
}

func TestFailedFetchIsRetried(t *testing.T) {
	src := &countingSource{err: errors.New("bus down")}
	cat := errcodes.New(src)
	ctx := context.Background()

	if err := cat.EnsureLoaded(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if cat.Loaded() {
		t.Fatal("failed fetch must not mark catalog loaded")
	}

	src.err = nil
	src.entries = sampleEntries()
	if err := cat.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Fatalf("expected retry after failure, got %d calls", got)
	}
}

func TestCheck(t *testing.T) {
	cat := errcodes.New(&countingSource{entries: sampleEntries()})
	ctx := context.Background()

	if err := cat.Check(ctx, "create pool", "p", dbusapi.Status{Code: 0, Message: "Ok"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	err := cat.CheckLookup(ctx, "resolve pool", "deadpool", dbusapi.Status{Code: 7, Message: "no pool named deadpool"})
	e, ok := errcodes.AsError(err)
	if !ok {
		t.Fatalf("expected *errcodes.Error, got %T", err)
	}
	if e.Kind != errcodes.KindResolution || e.Name != errcodes.PoolNotFound || e.Code != 7 || !e.NotFound() {
		t.Fatalf("unexpected error %+v", e)
	}
	if !errcodes.IsCode(err, errcodes.PoolNotFound) {
		t.Fatal("IsCode should match by name")
	}
	want := "resolve pool deadpool: STRATIS_POOL_NOTFOUND: Pool not found: no pool named deadpool"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	err = cat.Check(ctx, "destroy pool", "p", dbusapi.Status{Code: 4242})
	e, _ = errcodes.AsError(err)
	if e == nil || e.Name != "UNKNOWN" || e.Kind != errcodes.KindDomain {
		t.Fatalf("unexpected error for unpublished code: %v", err)
	}
}

func TestCheckUsesPublishedSuccessCode(t *testing.T) {
	entries := []dbusapi.CodeEntry{
		{Name: errcodes.OK, Code: 5, Description: "Ok"},
		{Name: errcodes.GenericError, Code: 0, Description: "Error"},
	}
	cat := errcodes.New(&countingSource{entries: entries})
	ctx := context.Background()

	if err := cat.Check(ctx, "op", "", dbusapi.Status{Code: 5}); err != nil {
		t.Fatalf("code 5 is success for this daemon: %v", err)
	}
	if err := cat.Check(ctx, "op", "", dbusapi.Status{Code: 0}); !errcodes.IsCode(err, errcodes.GenericError) {
		t.Fatalf("code 0 is an error for this daemon, got %v", err)
	}
}

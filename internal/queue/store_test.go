package queue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sage222/SageDialogEnhance/internal/queue"
	"github.com/Sage222/SageDialogEnhance/internal/testsupport"
)

func TestAddAndGet(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "/media/in/The.Long.Walk.mkv")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if job.Status != queue.StatusPending {
		t.Fatalf("status = %q, want pending", job.Status)
	}
	if job.Title != "The Long Walk" {
		t.Fatalf("title = %q", job.Title)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched == nil || fetched.SourcePath != job.SourcePath {
		t.Fatalf("fetched = %+v", fetched)
	}
}

func TestAddRejectsDuplicatePath(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "/media/in/a.mkv"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := store.Add(ctx, "/media/in/a.mkv")
	if !errors.Is(err, queue.ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "/media/in/b.mkv")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	job.Status = queue.StatusRunning
	job.OutputPath = "/media/in/processed/b_enhanced.mkv"
	job.Codec = "eac3"
	job.Bitrate = "640k"
	job.ProgressPercent = 50
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("update: %v", err)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Status != queue.StatusRunning || fetched.Codec != "eac3" || fetched.ProgressPercent != 50 {
		t.Fatalf("fetched = %+v", fetched)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	paths := []string{"/m/a.mkv", "/m/b.mkv", "/m/c.mkv"}
	var jobs []*queue.Job
	for _, path := range paths {
		job, err := store.Add(ctx, path)
		if err != nil {
			t.Fatalf("add %s: %v", path, err)
		}
		jobs = append(jobs, job)
	}

	jobs[1].Status = queue.StatusFailed
	if err := store.Update(ctx, jobs[1]); err != nil {
		t.Fatalf("update: %v", err)
	}

	pending, err := store.List(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending count = %d, want 2", len(pending))
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all count = %d, want 3", len(all))
	}
	// insertion order preserved
	for i, path := range paths {
		if all[i].SourcePath != path {
			t.Fatalf("all[%d] = %q, want %q", i, all[i].SourcePath, path)
		}
	}
}

func TestResetStuckProcessing(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "/m/stuck.mkv")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	job.Status = queue.StatusRunning
	job.ProgressPercent = 50
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("update: %v", err)
	}

	reset, err := store.ResetStuckProcessing(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset != 1 {
		t.Fatalf("reset count = %d, want 1", reset)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Status != queue.StatusPending || fetched.ProgressPercent != 0 {
		t.Fatalf("fetched = %+v", fetched)
	}
}

func TestRetryResetsFailedAndStopped(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	failed, _ := store.Add(ctx, "/m/failed.mkv")
	stopped, _ := store.Add(ctx, "/m/stopped.mkv")
	done, _ := store.Add(ctx, "/m/done.mkv")

	failed.SetFailed("ffmpeg exited with status 1")
	stopped.Status = queue.StatusStopped
	done.Status = queue.StatusSucceeded
	for _, job := range []*queue.Job{failed, stopped, done} {
		if err := store.Update(ctx, job); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	retried, err := store.Retry(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if retried != 2 {
		t.Fatalf("retried = %d, want 2", retried)
	}

	fetched, err := store.GetByID(ctx, failed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Status != queue.StatusPending || fetched.ErrorMessage != "" {
		t.Fatalf("fetched = %+v", fetched)
	}
}

func TestClearAndClearFailed(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	keep, _ := store.Add(ctx, "/m/keep.mkv")
	gone, _ := store.Add(ctx, "/m/gone.mkv")
	gone.SetFailed("boom")
	if err := store.Update(ctx, gone); err != nil {
		t.Fatalf("update: %v", err)
	}

	removed, err := store.ClearFailed(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if job, _ := store.GetByID(ctx, keep.ID); job == nil {
		t.Fatal("pending job should survive clear-failed")
	}

	removed, err = store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("queue not empty after clear: %d jobs", len(all))
	}
}

func TestStats(t *testing.T) {
	store, _ := testsupport.OpenStore(t)
	ctx := context.Background()

	a, _ := store.Add(ctx, "/m/a.mkv")
	_, _ = store.Add(ctx, "/m/b.mkv")
	a.Status = queue.StatusSucceeded
	if err := store.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[queue.StatusPending] != 1 || stats[queue.StatusSucceeded] != 1 {
		t.Fatalf("stats = %v", stats)
	}
}

func TestInferTitle(t *testing.T) {
	cases := map[string]string{
		"/m/the_quiet_american.mkv": "The Quiet American",
		"/m/Dune.Part.Two.mp4":      "Dune Part Two",
		"/m/already titled.mov":     "Already Titled",
	}
	for path, want := range cases {
		if got := queue.InferTitle(path); got != want {
			t.Errorf("InferTitle(%q) = %q, want %q", path, got, want)
		}
	}
}

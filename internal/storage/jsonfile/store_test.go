package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daymark.json")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return store, path
}

func TestInitCreatesDocument(t *testing.T) {
	store, path := setupTestStore(t)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("document mode = %v, want 0600", info.Mode().Perm())
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.LastResetDate != time.Now().Format(constants.DateFormat) {
		t.Errorf("LastResetDate = %q, want today", settings.LastResetDate)
	}
}

func TestInitLoadsExisting(t *testing.T) {
	store, path := setupTestStore(t)
	store.AddTask(models.Task{ID: "a", Title: "Read", CreationDate: time.Now()})

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	tasks, _ := again.GetAllTasks()
	if len(tasks) != 1 {
		t.Errorf("len(tasks) = %d, want 1", len(tasks))
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if err := store.Load(); err == nil {
		t.Fatal("Load() should fail for missing file")
	}
	if _, err := store.GetAllTasks(); err == nil {
		t.Error("GetAllTasks() should fail before Load")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	os.WriteFile(path, []byte(`{"version": 99}`), 0600)
	if err := NewStore(path).Load(); err == nil {
		t.Fatal("Load() should reject newer document version")
	}
}

func TestTasks(t *testing.T) {
	store, path := setupTestStore(t)
	base := time.Date(2024, 4, 25, 9, 0, 0, 0, time.UTC)

	store.AddTask(models.Task{ID: "b", Title: "Second", CreationDate: base.Add(time.Minute)})
	store.AddTask(models.Task{ID: "a", Title: "First", CreationDate: base})
	if err := store.AddTask(models.Task{ID: "a", Title: "dup", CreationDate: base}); err == nil {
		t.Error("AddTask() with duplicate id should fail")
	}

	tasks, _ := store.GetAllTasks()
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Fatalf("GetAllTasks() = %+v", tasks)
	}

	tasks[0].Title = "mutated"
	got, _ := store.GetTask("a")
	if got.Title != "First" {
		t.Error("GetAllTasks() leaked internal state")
	}

	got.IsComplete = true
	got.CreationDate = time.Now()
	if err := store.UpdateTask(got); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	got, _ = store.GetTask("a")
	if !got.IsComplete || !got.CreationDate.Equal(base) {
		t.Errorf("UpdateTask() result = %+v", got)
	}

	if err := store.UpdateTask(models.Task{ID: "zzz"}); !dmerrors.Is(err, dmerrors.ErrNotFound) {
		t.Errorf("UpdateTask() missing error = %v, want ErrNotFound", err)
	}

	store.DeleteTask("b")
	store.DeleteTask("b")
	if _, err := store.GetTask("b"); !dmerrors.Is(err, dmerrors.ErrNotFound) {
		t.Errorf("GetTask() after delete error = %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	tasks, _ = reopened.GetAllTasks()
	if len(tasks) != 1 || !tasks[0].IsComplete {
		t.Errorf("persisted tasks = %+v", tasks)
	}
}

func TestBulkOperations(t *testing.T) {
	store, _ := setupTestStore(t)
	for _, id := range []string{"a", "b"} {
		store.AddTask(models.Task{ID: id, Title: id, CreationDate: time.Now()})
	}

	store.SetAllTasksComplete(true)
	tasks, _ := store.GetAllTasks()
	for _, task := range tasks {
		if !task.IsComplete {
			t.Errorf("task %s not complete", task.ID)
		}
	}

	store.DeleteAllTasks()
	tasks, _ = store.GetAllTasks()
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestHistoryOrdering(t *testing.T) {
	store, _ := setupTestStore(t)
	day := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	offsets := map[string]int{"m1": 0, "m3": 2, "m2": 1}
	for _, id := range []string{"m1", "m3", "m2"} {
		if err := store.AddHistoryMarker(models.HistoryMarker{ID: id, Date: day.AddDate(0, 0, offsets[id]), TotalTasks: 1}); err != nil {
			t.Fatal(err)
		}
	}

	desc, _ := store.GetHistoryMarkers(constants.SortDescending)
	if desc[0].ID != "m3" || desc[1].ID != "m2" || desc[2].ID != "m1" {
		t.Errorf("descending = %v, %v, %v", desc[0].ID, desc[1].ID, desc[2].ID)
	}
	asc, _ := store.GetHistoryMarkers(constants.SortAscending)
	if asc[0].ID != "m1" || asc[2].ID != "m3" {
		t.Errorf("ascending = %v ... %v", asc[0].ID, asc[2].ID)
	}

	if err := store.AddHistoryMarker(models.HistoryMarker{ID: "bad", Date: day, CompletedTasks: 2, TotalTasks: 1}); err == nil {
		t.Error("AddHistoryMarker() should reject invalid counts")
	}

	store.DeleteAllHistoryMarkers()
	markers, _ := store.GetHistoryMarkers(constants.SortDescending)
	if len(markers) != 0 {
		t.Errorf("len(markers) = %d, want 0", len(markers))
	}
}

func TestArchiveDayIsAllOrNothing(t *testing.T) {
	store, _ := setupTestStore(t)
	now := time.Now()
	store.AddTask(models.Task{ID: "a", Title: "a", CreationDate: now, IsComplete: true})
	store.AddHistoryMarker(models.HistoryMarker{ID: "m", Date: now, TotalTasks: 1})
	before, _ := store.GetSettings()

	if _, err := store.ArchiveDay(models.HistoryMarker{ID: "m", Date: now}, "2099-01-01"); err == nil {
		t.Fatal("ArchiveDay() with duplicate marker id should fail")
	}
	task, _ := store.GetTask("a")
	after, _ := store.GetSettings()
	if !task.IsComplete || after.LastResetDate != before.LastResetDate {
		t.Error("failed ArchiveDay() left partial changes")
	}

	marker, err := store.ArchiveDay(models.HistoryMarker{ID: "m2", Date: now}, "2024-04-26")
	if err != nil {
		t.Fatalf("ArchiveDay() error = %v", err)
	}
	if marker.CompletedTasks != 1 || marker.TotalTasks != 1 {
		t.Errorf("ArchiveDay() counted %d/%d, want 1/1", marker.CompletedTasks, marker.TotalTasks)
	}
	task, _ = store.GetTask("a")
	after, _ = store.GetSettings()
	if task.IsComplete || after.LastResetDate != "2024-04-26" {
		t.Errorf("ArchiveDay() task=%+v settings=%+v", task, after)
	}

	if _, err := store.ArchiveDay(models.HistoryMarker{ID: "m3", Date: now}, "2024-04-26"); !dmerrors.Is(err, dmerrors.ErrAlreadyReset) {
		t.Errorf("second ArchiveDay() error = %v, want ErrAlreadyReset", err)
	}
}

func TestStoresSharingOnePath(t *testing.T) {
	cli, path := setupTestStore(t)
	watcher := NewStore(path)
	if err := watcher.Load(); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	for _, id := range []string{"a", "b", "c"} {
		if err := cli.AddTask(models.Task{ID: id, Title: id, CreationDate: now, IsComplete: id == "a"}); err != nil {
			t.Fatal(err)
		}
	}

	tasks, err := watcher.GetAllTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 {
		t.Fatalf("second store sees %d tasks, want 3", len(tasks))
	}

	marker, err := watcher.ArchiveDay(models.HistoryMarker{ID: "m", Date: now}, "2099-01-01")
	if err != nil {
		t.Fatalf("ArchiveDay() error = %v", err)
	}
	if marker.CompletedTasks != 1 || marker.TotalTasks != 3 {
		t.Errorf("ArchiveDay() counted %d/%d, want 1/3", marker.CompletedTasks, marker.TotalTasks)
	}

	tasks, _ = cli.GetAllTasks()
	if len(tasks) != 3 {
		t.Errorf("after reset the first store sees %d tasks, want 3", len(tasks))
	}
	settings, _ := cli.GetSettings()
	if settings.LastResetDate != "2099-01-01" {
		t.Errorf("LastResetDate = %q, want 2099-01-01", settings.LastResetDate)
	}
	if _, err := cli.ArchiveDay(models.HistoryMarker{ID: "m2", Date: now}, "2099-01-01"); !dmerrors.Is(err, dmerrors.ErrAlreadyReset) {
		t.Errorf("ArchiveDay() from the first store error = %v, want ErrAlreadyReset", err)
	}
}

func TestConcurrentWritersKeepEveryTask(t *testing.T) {
	_, path := setupTestStore(t)

	const writers, perWriter = 4, 10
	var wg sync.WaitGroup
	for w := range writers {
		store := NewStore(path)
		if err := store.Load(); err != nil {
			t.Fatal(err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				id := fmt.Sprintf("w%d-%d", w, i)
				if err := store.AddTask(models.Task{ID: id, Title: id, CreationDate: time.Now()}); err != nil {
					t.Errorf("AddTask(%s) error = %v", id, err)
				}
			}
		}()
	}
	wg.Wait()

	reader := NewStore(path)
	if err := reader.Load(); err != nil {
		t.Fatal(err)
	}
	tasks, _ := reader.GetAllTasks()
	if len(tasks) != writers*perWriter {
		t.Errorf("len(tasks) = %d, want %d", len(tasks), writers*perWriter)
	}
}

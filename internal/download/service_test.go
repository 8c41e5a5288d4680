package download

import (
	"strings"
	"testing"

	"github.com/devsolux/yt-dlp-gui/internal/format"
	"github.com/devsolux/yt-dlp-gui/internal/model"
)

func videoSpec() format.Spec {
	return format.BuildSpec(format.TypeVideo, "1080p")
}

func TestNewService(t *testing.T) {
	service := NewService("/tmp", 2)

	if service.downloadDir != "/tmp" {
		t.Errorf("Expected downloadDir to be '/tmp', got '%s'", service.downloadDir)
	}

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestAddTask(t *testing.T) {
	service := NewService("/tmp", 1)

	// Add first task
	task1, err := service.AddTask("https://youtube.com/watch?v=test1", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task1.URL != "https://youtube.com/watch?v=test1" {
		t.Errorf("Expected URL to be 'https://youtube.com/watch?v=test1', got '%s'", task1.URL)
	}

	if task1.Status != model.TaskStatusPending && task1.Status != model.TaskStatusStarting {
		t.Errorf("Expected status to be Pending or Starting, got %s", task1.Status)
	}

	if task1.Format.FormatID == "" {
		t.Error("Expected task to carry a format identifier")
	}

	// Try to add duplicate task (should fail)
	_, err = service.AddTask("https://youtube.com/watch?v=test1", videoSpec())
	if err == nil {
		t.Error("Expected error for duplicate URL, got nil")
	}

	// Add different task (should succeed)
	task2, err := service.AddTask("https://youtube.com/watch?v=test2", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task2.URL != "https://youtube.com/watch?v=test2" {
		t.Errorf("Expected URL to be 'https://youtube.com/watch?v=test2', got '%s'", task2.URL)
	}
}

func TestAddTask_CapturesSelection(t *testing.T) {
	service := NewService("/tmp", 1)

	audioTask, err := service.AddTask("https://youtube.com/watch?v=audio", format.BuildSpec(format.TypeAudio, "720p"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if audioTask.Format.FormatID != format.AudioFormatID {
		t.Errorf("Expected audio format %q, got %q", format.AudioFormatID, audioTask.Format.FormatID)
	}
	if !audioTask.Format.AudioOnly {
		t.Error("Expected AudioOnly to be set for audio selection")
	}

	videoTask, err := service.AddTask("https://youtube.com/watch?v=video", format.BuildSpec(format.TypeVideo, "480p"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(videoTask.Format.FormatID, "height<=480") {
		t.Errorf("Expected 480p height cap in format ID, got %q", videoTask.Format.FormatID)
	}
}

func TestGetTask(t *testing.T) {
	service := NewService("/tmp", 1)

	task, err := service.AddTask("https://youtube.com/watch?v=test", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	retrievedTask, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Expected task to exist")
	}

	if retrievedTask.ID != task.ID {
		t.Errorf("Expected task ID to be '%s', got '%s'", task.ID, retrievedTask.ID)
	}

	_, exists = service.GetTask("non-existing-id")
	if exists {
		t.Error("Expected task to not exist")
	}
}

func TestGetAllTasks(t *testing.T) {
	service := NewService("/tmp", 2)

	tasks := service.GetAllTasks()
	if len(tasks) != 0 {
		t.Errorf("Expected 0 tasks, got %d", len(tasks))
	}

	task1, err1 := service.AddTask("https://youtube.com/watch?v=test1", videoSpec())
	if err1 != nil {
		t.Fatalf("Failed to add first task: %v", err1)
	}
	task2, err2 := service.AddTask("https://youtube.com/watch?v=test2", videoSpec())
	if err2 != nil {
		t.Fatalf("Failed to add second task: %v", err2)
	}

	tasks = service.GetAllTasks()
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}

	found := map[string]bool{}
	for _, task := range tasks {
		found[task.ID] = true
	}
	if !found[task1.ID] || !found[task2.ID] {
		t.Error("GetAllTasks should return all added tasks")
	}
}

func TestStopTask_NotFound(t *testing.T) {
	service := NewService("/tmp", 1)

	if err := service.StopTask("missing"); err == nil {
		t.Error("Expected error stopping unknown task")
	}
}

func TestRemoveTask(t *testing.T) {
	// maxParallel 0 keeps the task in Pending so removal is deterministic
	service := NewService("/tmp", 0)

	task, err := service.AddTask("https://youtube.com/watch?v=test", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := service.RemoveTask(task.ID); err != nil {
		t.Fatalf("Expected no error removing pending task, got %v", err)
	}

	if _, exists := service.GetTask(task.ID); exists {
		t.Error("Expected task to be removed")
	}

	if err := service.RemoveTask(task.ID); err == nil {
		t.Error("Expected error removing already-removed task")
	}
}

func TestRestartTask_InvalidState(t *testing.T) {
	service := NewService("/tmp", 0)

	if err := service.RestartTask("missing"); err == nil {
		t.Error("Expected error restarting unknown task")
	}
}

func TestSetMaxParallelDownloads(t *testing.T) {
	service := NewService("/tmp", 2)

	service.SetMaxParallelDownloads(5)
	if service.maxParallel != 5 {
		t.Errorf("Expected maxParallel 5, got %d", service.maxParallel)
	}

	service.SetMaxParallelDownloads(0)
	if service.maxParallel != 1 {
		t.Errorf("Expected maxParallel clamped to 1, got %d", service.maxParallel)
	}
}

func TestSetDownloadDirectory(t *testing.T) {
	service := NewService("/tmp", 1)

	service.SetDownloadDirectory("/videos")
	if service.downloadDir != "/videos" {
		t.Errorf("Expected downloadDir '/videos', got '%s'", service.downloadDir)
	}

	// Empty directory is ignored
	service.SetDownloadDirectory("")
	if service.downloadDir != "/videos" {
		t.Errorf("Empty directory should not override, got '%s'", service.downloadDir)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected unique task IDs")
	}
	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected task ID prefix %q, got %q", TaskIDPrefix, id1)
	}
}

func TestAddTaskClaimsSlotBeforeSpawning(t *testing.T) {
	service := NewService("/tmp", 1)

	// The parallel slot must be reserved synchronously, not inside the
	// download goroutine, so the gate cannot be oversubscribed
	task1, err := service.AddTask("https://youtube.com/watch?v=claim1", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	service.tasksMutex.RLock()
	status := task1.Status
	active := service.activeCount
	service.tasksMutex.RUnlock()

	if status == model.TaskStatusPending {
		t.Error("Expected task to be claimed immediately, still Pending")
	}
	if active != 1 {
		t.Errorf("Expected activeCount 1 after claiming, got %d", active)
	}

	// No capacity left: the second task must stay Pending
	task2, err := service.AddTask("https://youtube.com/watch?v=claim2", videoSpec())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	service.tasksMutex.RLock()
	status = task2.Status
	active = service.activeCount
	service.tasksMutex.RUnlock()

	if status != model.TaskStatusPending {
		t.Errorf("Expected second task to stay Pending, got %s", status)
	}
	if active != 1 {
		t.Errorf("Expected activeCount to stay 1, got %d", active)
	}
}

func TestStartNextPendingTaskClaimsOnce(t *testing.T) {
	service := NewService("/tmp", 1)

	task := &model.DownloadTask{
		ID:     generateTaskID(),
		URL:    "https://youtube.com/watch?v=next1",
		Format: videoSpec(),
		Status: model.TaskStatusPending,
		ETASec: -1,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	// Two finishing downloads may both look for the next pending task;
	// only one of them may claim it
	service.startNextPendingTask()
	service.startNextPendingTask()

	service.tasksMutex.RLock()
	defer service.tasksMutex.RUnlock()

	if service.activeCount != 1 {
		t.Errorf("Expected exactly one claimed slot, got activeCount %d", service.activeCount)
	}
	if task.Status == model.TaskStatusPending {
		t.Error("Expected the pending task to be claimed")
	}
}

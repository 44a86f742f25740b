package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/spf13/cobra"
)

func sampleJob() *client.Job {
	return &client.Job{
		ID:                   1,
		UUID:                 "j1",
		ProductType:          "POSTERS",
		Quantity:             100,
		DueDate:              "2026-12-01T00:00:00",
		Description:          strPtr("Concert posters"),
		BiddingDurationHours: 24,
		State:                "DRAFT",
		CreatedAt:            "2026-11-01T10:00:00",
	}
}

func TestJobsList_NoJobs(t *testing.T) {
	var out bytes.Buffer

	err := runJobsList("", WithAPI(newMockAPI()), WithOutput(&out), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	outputStr := out.String()
	if !strings.Contains(outputStr, "No jobs found") {
		t.Errorf("expected 'No jobs found' message, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "printmarket jobs create") {
		t.Errorf("expected hint about creating jobs, got: %s", outputStr)
	}
}

func TestJobsList_Table(t *testing.T) {
	api := newMockAPI()
	api.jobs = []client.Job{*sampleJob()}
	var out bytes.Buffer

	err := runJobsList("open", WithAPI(api), WithOutput(&out), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if api.listState != client.JobOpen {
		t.Errorf("expected state filter OPEN, got %q", api.listState)
	}

	outputStr := out.String()
	for _, want := range []string{"UUID", "PRODUCT", "j1", "POSTERS", "100", "DRAFT"} {
		if !strings.Contains(outputStr, want) {
			t.Errorf("expected %q in output, got: %s", want, outputStr)
		}
	}
}

func TestJobsList_JSON(t *testing.T) {
	api := newMockAPI()
	api.jobs = []client.Job{*sampleJob()}
	var out bytes.Buffer

	err := runJobsList("", WithAPI(api), WithOutput(&out), WithFormat(output.FormatJSON))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	var jobs []client.Job
	if err := json.Unmarshal(out.Bytes(), &jobs); err != nil {
		t.Fatalf("expected json list, got %q: %v", out.String(), err)
	}
	if len(jobs) != 1 || jobs[0].UUID != "j1" {
		t.Errorf("unexpected jobs: %+v", jobs)
	}
}

func TestJobsList_EmptyJSONIsArray(t *testing.T) {
	api := newMockAPI()
	api.jobs = []client.Job{}
	var out bytes.Buffer

	if err := runJobsList("", WithAPI(api), WithOutput(&out), WithFormat(output.FormatJSON)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("expected empty json array, got %q", out.String())
	}
}

func TestJobsList_UnknownState(t *testing.T) {
	api := newMockAPI()

	err := runJobsList("bogus", WithAPI(api))
	if err == nil {
		t.Fatal("expected error for unknown state, got nil")
	}
	if !strings.Contains(err.Error(), "unknown job state") {
		t.Errorf("unexpected error: %s", err.Error())
	}
}

func TestJobsList_SessionExpiredAddsLoginHint(t *testing.T) {
	api := newMockAPI()
	api.err = &client.Error{Kind: client.KindAuthExpired, Status: 401, Message: "session expired, please log in again."}

	err := runJobsList("", WithAPI(api), WithOutput(&bytes.Buffer{}), WithFormat(output.FormatTable))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !client.IsAuthError(err) {
		t.Errorf("expected wrapped auth error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "printmarket login") {
		t.Errorf("expected login hint, got: %s", err.Error())
	}
}

func TestJobsMatching_Empty(t *testing.T) {
	var out bytes.Buffer

	err := runJobsMatching(WithAPI(newMockAPI()), WithOutput(&out), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(out.String(), "No matching jobs") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestJobsGet_Detail(t *testing.T) {
	api := newMockAPI()
	api.job = sampleJob()
	var out bytes.Buffer

	err := runJobsGet("j1", WithAPI(api), WithOutput(&out), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	outputStr := out.String()
	if !strings.Contains(outputStr, "Concert posters") {
		t.Errorf("expected description, got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "delivery_location") {
		t.Errorf("expected delivery_location row, got: %s", outputStr)
	}
}

func TestJobsCreate_ParsesFlags(t *testing.T) {
	api := newMockAPI()
	api.job = sampleJob()

	f := jobFlags{
		productType:  "posters",
		quantity:     100,
		dueDate:      "2026-12-01",
		description:  "Concert posters",
		biddingHours: 48,
	}

	err := runJobsCreate(f, WithAPI(api), WithOutput(&bytes.Buffer{}), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if api.created == nil {
		t.Fatal("expected CreateJob to be called")
	}
	if api.created.ProductType != client.ProductPosters {
		t.Errorf("expected POSTERS, got %s", api.created.ProductType)
	}
	want := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	if !api.created.DueDate.Equal(want) {
		t.Errorf("expected due date %v, got %v", want, api.created.DueDate)
	}
	if api.created.BiddingDurationHours != 48 {
		t.Errorf("expected 48 bidding hours, got %d", api.created.BiddingDurationHours)
	}
}

func TestJobsCreate_InvalidDueDate(t *testing.T) {
	api := newMockAPI()

	err := runJobsCreate(jobFlags{productType: "POSTERS", quantity: 1, dueDate: "next week"}, WithAPI(api))
	if err == nil {
		t.Fatal("expected error for invalid due date, got nil")
	}
	if api.created != nil {
		t.Error("expected no request for invalid due date")
	}
}

func TestJobsCreate_UploadsFileFirst(t *testing.T) {
	path := writeTempFile(t, "poster.pdf", "%PDF-1.4")
	api := newMockAPI()
	api.job = sampleJob()

	f := jobFlags{productType: "POSTERS", quantity: 10, dueDate: "2026-12-01", file: path}

	err := runJobsCreate(f, WithAPI(api), WithOutput(&bytes.Buffer{}), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if api.uploaded != "%PDF-1.4" {
		t.Errorf("expected file content to be uploaded, got %q", api.uploaded)
	}
	if api.created.FileURL != "jobs/poster.pdf" {
		t.Errorf("expected job to reference uploaded file, got %q", api.created.FileURL)
	}
}

func TestJobsCreate_InvalidJobSkipsUpload(t *testing.T) {
	path := writeTempFile(t, "poster.pdf", "%PDF-1.4")
	api := newMockAPI()

	// quantity missing
	f := jobFlags{productType: "POSTERS", dueDate: "2026-12-01", file: path}

	err := runJobsCreate(f, WithAPI(api), WithOutput(&bytes.Buffer{}), WithFormat(output.FormatTable))
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if kind, ok := client.KindOf(err); !ok || kind != client.KindValidation {
		t.Errorf("expected validation error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "quantity") {
		t.Errorf("expected quantity in message, got: %s", err.Error())
	}
	if api.uploaded != "" {
		t.Errorf("expected no upload for an invalid job, got %q", api.uploaded)
	}
	if api.created != nil {
		t.Error("expected no create request for an invalid job")
	}
}

func TestJobsUpdate_OnlyChangedFlags(t *testing.T) {
	api := newMockAPI()
	api.job = sampleJob()

	var f jobFlags
	cmd := &cobra.Command{Use: "update"}
	f.register(cmd)

	if err := cmd.ParseFlags([]string{"--quantity", "250", "--pickup"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	update, err := f.update(cmd)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if update.Quantity == nil || *update.Quantity != 250 {
		t.Errorf("expected quantity 250, got %v", update.Quantity)
	}
	if update.PickupPreferred == nil || !*update.PickupPreferred {
		t.Errorf("expected pickup true, got %v", update.PickupPreferred)
	}
	if update.Description != nil || update.DueDate != nil || update.ProductType != nil {
		t.Errorf("expected untouched fields to stay nil, got %+v", update)
	}

	err = runJobsUpdate("j1", update, "", WithAPI(api), WithOutput(&bytes.Buffer{}), WithFormat(output.FormatTable))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if api.updatedID != "j1" {
		t.Errorf("expected update of j1, got %s", api.updatedID)
	}
}

func TestJobsUpdate_NothingToUpdate(t *testing.T) {
	api := newMockAPI()

	err := runJobsUpdate("j1", client.JobUpdate{}, "", WithAPI(api))
	if err == nil {
		t.Fatal("expected error for empty update, got nil")
	}
	if api.updated != nil {
		t.Error("expected no request for empty update")
	}
}

func TestJobsDelete(t *testing.T) {
	api := newMockAPI()
	var out bytes.Buffer

	if err := runJobsDelete("j1", WithAPI(api), WithOutput(&out)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if api.deleted != "j1" {
		t.Errorf("expected j1 to be deleted, got %q", api.deleted)
	}
	if !strings.Contains(out.String(), "Deleted job j1") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}
}

func TestJobsPublish(t *testing.T) {
	api := newMockAPI()
	job := sampleJob()
	job.State = "OPEN"
	api.job = job
	var out bytes.Buffer

	err := runJobsPublish("j1", WithAPI(api), WithOutput(&out), WithFormat(output.FormatYAML))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if api.published != "j1" {
		t.Errorf("expected j1 to be published, got %q", api.published)
	}
	if !strings.Contains(out.String(), "state: OPEN") {
		t.Errorf("expected yaml state, got: %s", out.String())
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-12-01", false},
		{"2026-12-01T15:04:05Z", false},
		{"2026-12-01T15:04:05+02:00", false},
		{"01/12/2026", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := parseDueDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDueDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

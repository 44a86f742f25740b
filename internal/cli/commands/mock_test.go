package commands

import (
	"context"
	"io"
	"strings"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/session"
)

// mockAPI simulates the marketplace client and records what commands send
type mockAPI struct {
	baseURL  string
	user     *session.User
	err      error
	jobs     []client.Job
	job      *client.Job
	profile  *client.Profile
	upload   *client.UploadResult
	download string

	loginReq   client.LoginRequest
	signupReq  client.SignupRequest
	listState  client.JobState
	created    *client.JobCreate
	updated    *client.JobUpdate
	updatedID  string
	deleted    string
	published  string
	uploaded   string
	loggedOut  bool
	customerIn *client.CustomerProfileInput
	printerIn  *client.PrinterProfileInput
}

func newMockAPI() *mockAPI {
	return &mockAPI{baseURL: "http://localhost:3000"}
}

func (m *mockAPI) BaseURL() string { return m.baseURL }

func (m *mockAPI) Health(ctx context.Context) (*client.HealthStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &client.HealthStatus{Status: "healthy", Timestamp: "2026-01-01T00:00:00Z"}, nil
}

func (m *mockAPI) Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error) {
	m.loginReq = req
	if m.err != nil {
		return nil, m.err
	}
	role := req.Role
	if role == "" {
		role = client.RoleCustomer
	}
	return &client.AuthResponse{
		AccessToken: "t1",
		TokenType:   "bearer",
		User:        session.User{ID: 1, UUID: "u1", Email: req.Email, Role: string(role)},
	}, nil
}

func (m *mockAPI) Signup(ctx context.Context, req client.SignupRequest) (*client.AuthResponse, error) {
	m.signupReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &client.AuthResponse{
		AccessToken: "t2",
		TokenType:   "bearer",
		User:        session.User{ID: 2, UUID: "u2", Email: req.Email, Role: string(req.Role)},
	}, nil
}

func (m *mockAPI) Logout(ctx context.Context) error {
	m.loggedOut = true
	return nil
}

func (m *mockAPI) CurrentUser() (*session.User, bool) {
	return m.user, m.user != nil
}

func (m *mockAPI) CreateJob(ctx context.Context, job client.JobCreate) (*client.Job, error) {
	m.created = &job
	if m.err != nil {
		return nil, m.err
	}
	return m.job, nil
}

func (m *mockAPI) GetJob(ctx context.Context, jobUUID string) (*client.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.job, nil
}

func (m *mockAPI) ListJobs(ctx context.Context, state client.JobState) ([]client.Job, error) {
	m.listState = state
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

func (m *mockAPI) UpdateJob(ctx context.Context, jobUUID string, update client.JobUpdate) (*client.Job, error) {
	m.updatedID = jobUUID
	m.updated = &update
	if m.err != nil {
		return nil, m.err
	}
	return m.job, nil
}

func (m *mockAPI) DeleteJob(ctx context.Context, jobUUID string) error {
	m.deleted = jobUUID
	return m.err
}

func (m *mockAPI) PublishJob(ctx context.Context, jobUUID string) (*client.Job, error) {
	m.published = jobUUID
	if m.err != nil {
		return nil, m.err
	}
	return m.job, nil
}

func (m *mockAPI) MatchingJobs(ctx context.Context) ([]client.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

func (m *mockAPI) UploadJobFile(ctx context.Context, file client.FilePart) (*client.UploadResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, err
	}
	m.uploaded = string(data)
	if m.upload != nil {
		return m.upload, nil
	}
	return &client.UploadResult{
		FilePath: "jobs/" + file.Name,
		FileURL:  "jobs/" + file.Name,
		Filename: file.Name,
		Size:     file.Size,
	}, nil
}

func (m *mockAPI) FileURL(ref string) string {
	return m.baseURL + "/api/uploads/files/" + ref
}

// DownloadFile writes the content even on failure so partial files can be checked
func (m *mockAPI) DownloadFile(ctx context.Context, ref string, w io.Writer) (int64, error) {
	n, err := io.Copy(w, strings.NewReader(m.download))
	if err != nil {
		return n, err
	}
	return n, m.err
}

func (m *mockAPI) MyProfile(ctx context.Context) (*client.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profile == nil {
		return &client.Profile{}, nil
	}
	return m.profile, nil
}

func (m *mockAPI) SaveCustomerProfile(ctx context.Context, in client.CustomerProfileInput) (*client.CustomerProfile, error) {
	m.customerIn = &in
	if m.err != nil {
		return nil, m.err
	}
	return &client.CustomerProfile{UUID: "cp1", CompanyName: &in.CompanyName, CreatedAt: "2026-01-01T00:00:00Z"}, nil
}

func (m *mockAPI) SavePrinterProfile(ctx context.Context, in client.PrinterProfileInput) (*client.PrinterProfile, error) {
	m.printerIn = &in
	if m.err != nil {
		return nil, m.err
	}
	return &client.PrinterProfile{
		UUID:                  "pp1",
		BusinessName:          in.BusinessName,
		SupportedProductTypes: `["POSTERS"]`,
		PaymentTerms:          in.PaymentTerms,
		MinQuantity:           in.MinQuantity,
		MaxQuantity:           in.MaxQuantity,
		CreatedAt:             "2026-01-01T00:00:00Z",
	}, nil
}

// fakePrompter answers prompts with canned values
type fakePrompter struct {
	interactive bool
	selectIdx   int
	input       string

	selects []string
	inputs  []string
}

func (p *fakePrompter) Interactive() bool { return p.interactive }

func (p *fakePrompter) Select(label string, items []string) (int, error) {
	p.selects = append(p.selects, label)
	return p.selectIdx, nil
}

func (p *fakePrompter) Input(label string) (string, error) {
	p.inputs = append(p.inputs, label)
	return p.input, nil
}

func strPtr(s string) *string { return &s }

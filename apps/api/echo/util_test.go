package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/auth"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
	emailsvc "github.com/trezcool/studytrack/services/email"
	"github.com/trezcool/studytrack/services/identity"
	logsvc "github.com/trezcool/studytrack/services/logger"
	inmemkv "github.com/trezcool/studytrack/storage/kv/inmem"
	"github.com/trezcool/studytrack/storage/kvrepo"
	testutil "github.com/trezcool/studytrack/tests"
)

const testPassword = "s3cret-Pa55"

var (
	ctxBg = context.Background()

	errMissingToken = httpErr{Error: "missing or malformed bearer token"}
)

type fixture struct {
	app      Server
	repo     *kvrepo.Repository
	provider *identity.Provider
	mailSvc  *emailsvc.ConsoleServiceMock
	logs     *bytes.Buffer
}

func setup(t *testing.T) *fixture {
	return setupWithStore(t, inmemkv.New())
}

func setupWithStore(t *testing.T, kv core.KVStore) *fixture {
	t.Helper()
	f := &fixture{
		repo: kvrepo.New(kv),
		provider: identity.NewProvider(kv, identity.Options{
			SecretKey:          "test-secret",
			AppName:            "Studytrack",
			JWTExpirationDelta: core.Conf.Server.JWTExpirationDelta,
		}),
		logs: new(bytes.Buffer),
	}
	logger := logsvc.NewConsoleLogger(log.New(f.logs, "", 0))
	f.mailSvc = emailsvc.NewConsoleServiceMock(core.Conf, logger)

	f.app = NewServer(Options{
		AppName:        "Studytrack",
		TestMode:       true,
		DisableReqLogs: true,
		Logger:         logger,
		Auth:           f.provider,
		SubjectSvc:     subject.NewService(f.repo),
		TaskSvc:        task.NewService(f.repo),
		ProfileSvc:     profile.NewService(f.repo, f.mailSvc),
		AnalyticsSvc:   analytics.NewService(f.repo, f.repo),
	})
	return f
}

// signUp registers an account with its profile and returns it with a valid token.
func (f *fixture) signUp(t *testing.T, email, name string) (auth.Identity, string) {
	t.Helper()
	id, err := f.provider.SignUp(context.Background(), auth.NewAccount{Email: email, Name: name, Password: testPassword})
	if err != nil {
		t.Fatalf("signUp() failed: %v", err)
	}
	testutil.CreateProfile(t, f.repo, id.ID, id.Email, id.Name)
	token, err := f.provider.GenerateToken(id)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	return id, token
}

func (f *fixture) serve(tt httpTest) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	f.app.ServeHTTP(rec, req)
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	if method == "" {
		method = http.MethodGet
	}
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchall(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarchall(%s): %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, f *fixture, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, f.serve(tt))
		})
	}
}

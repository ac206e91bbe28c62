package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
	"github.com/dmitrijs2005/pdstore/internal/client/models"
)

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	signupEmail string
	signupPass  []byte
	signupErr   error

	loginEmail string
	loginPass  []byte
	loginErr   error

	restoreEmail string
	restoreErr   error

	logoutCalled int
	logoutErr    error

	pingErr error
}

func (f *fakeAuth) Signup(_ context.Context, email string, pass []byte) error {
	f.signupEmail, f.signupPass = email, append([]byte(nil), pass...)
	return f.signupErr
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAuth) Restore(context.Context) (string, error) {
	if f.restoreErr != nil {
		return "", f.restoreErr
	}
	if f.restoreEmail == "" {
		return "", client.ErrNotSignedIn
	}
	return f.restoreEmail, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled++
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeProfiles struct {
	profile    *models.Profile
	profileErr error

	catalog    []models.Challenge
	catalogErr error

	submitted *models.Survey
	submitRet *models.Profile
	submitErr error
}

func (f *fakeProfiles) Profile(context.Context) (*models.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeProfiles) SubmitSurvey(_ context.Context, s models.Survey) (*models.Profile, error) {
	f.submitted = &s
	return f.submitRet, f.submitErr
}

func (f *fakeProfiles) Challenges(context.Context) ([]models.Challenge, error) {
	return f.catalog, f.catalogErr
}

func newTestApp(as *fakeAuth, ps *fakeProfiles, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService:    as,
		profileService: ps,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            &out,
	}, &out
}

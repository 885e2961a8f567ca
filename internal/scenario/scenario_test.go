package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxkit/skilltest/request"
)

func TestLoad_Valid(t *testing.T) {
	s, err := Load("testdata/welcome-stop.yaml")
	require.NoError(t, err)

	assert.Equal(t, "welcome-stop", s.Name)
	assert.Equal(t, "en-US", s.Locale)
	require.Len(t, s.Steps, 2)

	assert.True(t, s.Steps[0].Launch)
	require.NotNil(t, s.Steps[0].Says)
	assert.Equal(t, "Welcome", *s.Steps[0].Says)
	require.NotNil(t, s.Steps[0].ShouldEndSession)
	assert.False(t, *s.Steps[0].ShouldEndSession)

	assert.Equal(t, "AMAZON.StopIntent", s.Steps[1].Intent)
	assert.True(t, s.Steps[1].SaysNothing)
}

func TestLoad_Slots(t *testing.T) {
	s, err := Load("testdata/order-pizza.yaml")
	require.NoError(t, err)

	require.Len(t, s.Steps, 2)
	assert.Equal(t, map[string]string{"Size": "large", "Topping": "olives"}, s.Steps[0].Slots)
	assert.Equal(t, "USER_INITIATED", s.Steps[1].SessionEnd)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load("testdata/invalid-unknown-field.yaml")
	assert.Error(t, err)
}

func TestLoad_BadSessionEndReason(t *testing.T) {
	_, err := Load("testdata/invalid-bad-reason.yaml")
	assert.Error(t, err)
}

func TestLoad_TwoRequestKinds(t *testing.T) {
	_, err := Load("testdata/invalid-two-kinds.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestLoad_ContradictoryExpectations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contradiction.yaml")
	doc := `name: contradiction
application_id: app
user_id: user
steps:
  - launch: true
    says: "hi"
    says_nothing: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestBuild_Sequence(t *testing.T) {
	s, err := Load("testdata/welcome-stop.yaml")
	require.NoError(t, err)

	seq, b, err := Build(s)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.Equal(t, "en-US", b.Locale())

	assert.Equal(t, request.TypeLaunch, seq[0].Request.Request.Type)
	require.NotNil(t, seq[0].Says)
	assert.Equal(t, "Welcome", *seq[0].Says)

	assert.Equal(t, request.TypeIntent, seq[1].Request.Request.Type)
	require.NotNil(t, seq[1].Request.Request.Intent)
	assert.Equal(t, "AMAZON.StopIntent", seq[1].Request.Request.Intent.Name)
	assert.True(t, seq[1].SaysNothing)
}

func TestBuild_SlotsAndSessionEnd(t *testing.T) {
	s, err := Load("testdata/order-pizza.yaml")
	require.NoError(t, err)

	seq, _, err := Build(s)
	require.NoError(t, err)
	require.Len(t, seq, 2)

	intent := seq[0].Request.Request.Intent
	require.NotNil(t, intent)
	assert.Equal(t, request.Slot{Name: "Size", Value: "large"}, intent.Slots["Size"])

	assert.Equal(t, request.TypeSessionEnded, seq[1].Request.Request.Type)
	assert.Equal(t, request.ReasonUserInitiated, seq[1].Request.Request.Reason)
}

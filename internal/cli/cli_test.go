package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/models"
	"github.com/noah-isme/course-conflict-checker/internal/service"
)

const snapshot = `{
  "records": [
    {"id": "a", "courseCode": "CS 121", "days": "MW", "startTime": "09:00", "endTime": "10:15", "room": "Shan 2460",
     "instructors": [{"lastName": "Stone", "firstName": "Ada"}]},
    {"id": "b", "courseCode": "CS 70", "days": "W", "startTime": "10:00", "endTime": "11:15", "room": "Shan 2460",
     "instructors": [{"lastName": "Stone", "firstName": "Ada"}]},
    {"id": "c", "courseCode": "MATH 30", "days": "TR", "startTime": "09:00", "endTime": "10:15", "room": "Shan 2460"}
  ],
  "constraints": [
    {"id": "core", "codes": ["cs121", "cs70"], "priority": "PRIORITY"}
  ]
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		checkTerm, checkFile, checkWorkers = "", "", 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "conflictctl version dev")
}

func TestCheckRequiresSource(t *testing.T) {
	t.Setenv("ENV", "development")
	_, err := execute(t, "", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--term or --file")
}

func TestCheckSnapshotFile(t *testing.T) {
	t.Setenv("ENV", "development")
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))

	out, err := execute(t, "", "check", "--file", path, "--workers", "2")
	require.NoError(t, err)

	var report dto.ConflictReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Instructors, 1)
	assert.Equal(t, "Stone, Ada", report.Instructors[0].Key)
	require.Len(t, report.Rooms, 1)
	assert.Equal(t, []string{"a", "b"}, report.Rooms[0].Clusters[0].RecordIDs)
	require.Len(t, report.Constraints, 1)
	assert.Equal(t, "core", report.Constraints[0].ID)
	assert.Empty(t, report.Dates)
	assert.Equal(t, 3, report.Summary.Records)
}

func TestCheckSnapshotStdin(t *testing.T) {
	t.Setenv("ENV", "development")
	out, err := execute(t, snapshot, "check", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"checkId"`)
}

func TestCheckSnapshotInvalid(t *testing.T) {
	t.Setenv("ENV", "development")
	_, err := execute(t, `{"records": []}`, "check", "--file", "-")
	require.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "")

	out, err := execute(t, "", "token", "--user", "u-7", "--role", "admin")
	require.NoError(t, err)

	claims, err := service.NewTokenService("cli-secret", "").ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u-7", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenCommandRejects(t *testing.T) {
	t.Setenv("ENV", "development")
	_, err := execute(t, "", "token", "--role", "owner")
	require.Error(t, err)

	t.Setenv("ENV", "production")
	_, err = execute(t, "", "token", "--role", "ADMIN")
	require.Error(t, err)
}

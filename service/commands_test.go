package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"myblog/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dbPath    string
	backupDir string
}

// setupTestEnv points the CLI at a scratch directory so that no config or
// dotenv file from the developer's checkout is picked up.
func setupTestEnv(t *testing.T) testEnv {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	env := testEnv{
		dbPath:    filepath.Join(dir, "data", "badger"),
		backupDir: filepath.Join(dir, "backups"),
	}
	t.Setenv("MYBLOG_STORAGE_DRIVER", "badger")
	t.Setenv("MYBLOG_STORAGE_PATH", env.dbPath)
	t.Setenv("MYBLOG_BACKUP_DIR", env.backupDir)
	t.Setenv("MYBLOG_LOG_LEVEL", "error")
	return env
}

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := RootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func countEntries(t *testing.T, path string) int {
	t.Helper()
	store, err := repositories.OpenBadger(path, nil)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Entries.Count()
	require.NoError(t, err)
	return n
}

func latestBackup(t *testing.T, dir string) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "backup_*.db"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files[len(files)-1]
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "myblog version "+Version+"\n", out)
}

func TestInitCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("creates database", func(t *testing.T) {
		out, _, err := runCommand(t, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Database initialized successfully")
		assert.DirExists(t, env.dbPath)
	})

	t.Run("refuses to reinitialize", func(t *testing.T) {
		out, _, err := runCommand(t, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Database already exists")
	})
}

func TestCleanCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("nothing to clean", func(t *testing.T) {
		out, _, err := runCommand(t, "", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database is already clean")
	})

	_, _, err := runCommand(t, "", "init")
	require.NoError(t, err)

	t.Run("cancelled", func(t *testing.T) {
		out, _, err := runCommand(t, "n\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
		assert.DirExists(t, env.dbPath)
	})

	t.Run("confirmed", func(t *testing.T) {
		out, _, err := runCommand(t, "y\n", "clean")
		require.NoError(t, err)
		assert.Contains(t, out, "Database cleaned successfully")
		assert.NoDirExists(t, env.dbPath)
	})
}

func TestEntryCreateCommand(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("valid entry", func(t *testing.T) {
		out, _, err := runCommand(t, "", "entry", "create",
			"--title", "My entry title", "--author", "Omar", "--body", "Hello")
		require.NoError(t, err)
		assert.Contains(t, out, "Created entry 1 at /")
		assert.Contains(t, out, "/1-my-entry-title/")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, errOut, err := runCommand(t, "", "entry", "create", "--body", "Hello")
		require.Error(t, err)
		assert.Contains(t, errOut, "author: This field is required.")
		assert.Contains(t, errOut, "title: This field is required.")
	})

	assert.Equal(t, 1, countEntries(t, env.dbPath))
}

func TestEntryDeleteCommand(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := runCommand(t, "", "entry", "create", "--title", "Doomed", "--author", "Omar")
	require.NoError(t, err)

	out, _, err := runCommand(t, "", "entry", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted entry 1")
	assert.Equal(t, 0, countEntries(t, env.dbPath))

	_, _, err = runCommand(t, "", "entry", "delete", "1")
	assert.EqualError(t, err, "entry 1 not found")

	_, _, err = runCommand(t, "", "entry", "delete", "abc")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, _, err := runCommand(t, "", "seed", "--entries", "3", "--comments", "2", "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 entries and")
	assert.Equal(t, 3, countEntries(t, env.dbPath))

	_, _, err = runCommand(t, "", "seed", "--entries", "0")
	assert.Error(t, err)
}

func TestBackupAndRestore(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("nothing to back up", func(t *testing.T) {
		out, _, err := runCommand(t, "", "backup")
		require.NoError(t, err)
		assert.Contains(t, out, "No database exists to backup")
	})

	_, _, err := runCommand(t, "", "entry", "create", "--title", "Kept", "--author", "Omar")
	require.NoError(t, err)

	out, _, err := runCommand(t, "", "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully")

	backup := latestBackup(t, env.backupDir)
	assert.FileExists(t, backup+ChecksumSuffix)
	require.NoError(t, verifyBackup(backup))

	_, _, err = runCommand(t, "", "clean", "--yes")
	require.NoError(t, err)

	out, _, err = runCommand(t, "", "restore", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully")
	assert.Equal(t, 1, countEntries(t, env.dbPath))

	t.Run("cancelled when database exists", func(t *testing.T) {
		out, _, err := runCommand(t, "n\n", "restore", backup)
		require.NoError(t, err)
		assert.Contains(t, out, "Operation cancelled")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCommand(t, "", "restore", filepath.Join(env.backupDir, "nope.db"))
		assert.ErrorContains(t, err, "backup file does not exist")
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		require.NoError(t, os.WriteFile(backup+ChecksumSuffix, []byte("deadbeef  x\n"), 0o644))
		_, _, err := runCommand(t, "", "restore", "--yes", backup)
		assert.ErrorContains(t, err, "checksum mismatch")
	})

	t.Run("empty backup without checksum", func(t *testing.T) {
		empty := filepath.Join(env.backupDir, "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))
		_, _, err := runCommand(t, "", "restore", "--yes", empty)
		assert.ErrorContains(t, err, "backup file is empty")
	})
}

func TestBackupNeedsBadger(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("MYBLOG_STORAGE_DRIVER", "sqlite")
	t.Setenv("MYBLOG_STORAGE_DSN", "blog.db")

	_, _, err := runCommand(t, "", "backup")
	assert.ErrorIs(t, err, errBadgerOnly)

	_, _, err = runCommand(t, "", "restore", "whatever.db")
	assert.ErrorIs(t, err, errBadgerOnly)
}

func TestCleanOnSQLite(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("MYBLOG_STORAGE_DRIVER", "sqlite")
	t.Setenv("MYBLOG_STORAGE_DSN", "blog.db")

	_, _, err := runCommand(t, "", "entry", "create", "--title", "Gone", "--author", "Omar")
	require.NoError(t, err)

	out, _, err := runCommand(t, "", "clean", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")

	store, err := repositories.Open(repositories.Options{Driver: repositories.DriverSQLite, DSN: "blog.db"})
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Entries.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := runCommand(t, "", "frobnicate")
	assert.Error(t, err)
}

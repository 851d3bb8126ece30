package files

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFiles(t *testing.T) {
	root := t.TempDir()
	local := NewLocalFiles(root)

	t.Run("should write the file under its id", func(t *testing.T) {
		require.NoError(t, local.WriteFile(&File{ID: "abc", Name: ResultFileName, Data: []byte(`{"ok":true}`)}))

		data, err := os.ReadFile(filepath.Join(root, "abc", ResultFileName))
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	})

	t.Run("should read back a written file", func(t *testing.T) {
		data, err := local.GetFile("abc", ResultFileName)

		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	})

	t.Run("should replace an existing file without leaving temporary files", func(t *testing.T) {
		require.NoError(t, local.WriteFile(&File{ID: "abc", Name: ResultFileName, Data: []byte(`{"ok":false}`)}))

		data, err := local.GetFile("abc", ResultFileName)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":false}`, string(data))

		entries, err := os.ReadDir(filepath.Join(root, "abc"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("should write directly into the root without an id", func(t *testing.T) {
		require.NoError(t, local.WriteFile(&File{Name: "out.json", Data: []byte("{}")}))
		assert.FileExists(t, filepath.Join(root, "out.json"))
	})

	t.Run("should report a missing file as not existing", func(t *testing.T) {
		_, err := local.GetFile("missing", ResultFileName)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewFilesHandler(t *testing.T) {
	t.Run("should use local files without a bucket", func(t *testing.T) {
		handler, err := NewFilesHandler(&Config{Local: &LocalConfig{LocalRootPath: t.TempDir()}})

		require.NoError(t, err)
		assert.IsType(t, LocalFiles{}, handler)
	})

	t.Run("should use local files when forced", func(t *testing.T) {
		handler, err := NewFilesHandler(&Config{
			Local:          &LocalConfig{LocalRootPath: t.TempDir()},
			S3:             &S3Config{BucketName: "executions"},
			ForceLocalMode: true,
		})

		require.NoError(t, err)
		assert.IsType(t, LocalFiles{}, handler)
	})

	t.Run("should require a local configuration", func(t *testing.T) {
		_, err := NewFilesHandler(&Config{})
		assert.Error(t, err)

		_, err = NewFilesHandler(&Config{Local: &LocalConfig{}})
		assert.Error(t, err)
	})
}

func TestWriteJSON(t *testing.T) {
	buffer := new(bytes.Buffer)

	require.NoError(t, WriteJSON(buffer, map[string]any{"run": map[string]any{"stdout": "2\n"}}))
	assert.Equal(t, "{\n  \"run\": {\n    \"stdout\": \"2\\n\"\n  }\n}\n", buffer.String())
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "abc/result.json", objectKey("abc", ResultFileName))
	assert.Equal(t, "result.json", objectKey("", ResultFileName))
	assert.Equal(t, "application/json", contentType(ResultFileName))
	assert.Equal(t, "text/plain", contentType(SourceFileName))
}

package s3source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acc.r2.cloudflarestorage.com", sanitizeEndpoint("https://acc.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "minio:9000", sanitizeEndpoint("minio:9000"))
	require.Empty(t, sanitizeEndpoint(""))
}

func TestNewSourceDefaults(t *testing.T) {
	src, err := NewSource("http://localhost:9000", "key", "secret", "calendars", "", "", nil)
	require.NoError(t, err)
	require.Equal(t, "holidays.json", src.key)
	require.Equal(t, "calendars", src.bucket)
}

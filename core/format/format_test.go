package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1234567, "1.18 MB"},
		{MaxUploadSize, "100 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FileSize(tc.bytes), "bytes=%d", tc.bytes)
	}
}

func TestDateRelative(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		age  time.Duration
		want string
	}{
		{2 * time.Hour, "Today"},
		{30 * time.Hour, "Yesterday"},
		{50 * time.Hour, "2 days ago"},
		{160 * time.Hour, "6 days ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, dateAt(now.Add(-tc.age), now), "age=%s", tc.age)
	}
	assert.Equal(t, "2026-08-15", dateAt(now.Add(-13*24*time.Hour), now), "超过一周应退回日期")
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2006-01-02", DateString("2006-01-02 15:04:05.000Z"))
	assert.Equal(t, "not-a-date", DateString("not-a-date"), "无法解析时应原样返回")
}

func TestFileTypeOf(t *testing.T) {
	cases := map[string]FileType{
		"report.pdf":   TypePDF,
		"photo.JPG":    TypeImage,
		"clip.webm":    TypeVideo,
		"song.flac":    TypeAudio,
		"notes.txt":    TypeDocument,
		"backup.tar":   TypeArchive,
		"main.py":      TypeCode,
		"data.json":    TypeCode,
		"unknown.xyz":  TypeDefault,
		"no-extension": TypeDefault,
	}
	for name, want := range cases {
		assert.Equal(t, want, FileTypeOf(name), "filename=%s", name)
	}
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload(1024, "image/png"))
	assert.NoError(t, ValidateUpload(1024, "application/pdf"))

	err := ValidateUpload(MaxUploadSize+1, "image/png")
	require.Error(t, err)
	assert.Equal(t, "File size must be less than 100 MB", err.Error())

	err = ValidateUpload(1024, "application/x-msdownload")
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

// Package format 提供展示层的纯函数：文件大小、相对日期、文件类型
// 归类与上传前校验。
package format

import (
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MaxUploadSize 上传大小上限（100MB）。
const MaxUploadSize = 100 * 1024 * 1024

// FileSize 把字节数格式化为人类可读的大小，保留至多两位小数。
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	value := float64(bytes)
	exp := 0
	for value >= 1024 && exp < len(units)-1 {
		value /= 1024
		exp++
	}
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + units[exp]
}

// Date 把时间渲染为相对文案：Today、Yesterday、N days ago，
// 超过一周退回到日期本身。
func Date(t time.Time) string {
	return dateAt(t, time.Now())
}

// 后端记录携带的时间戳格式。
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z",
	time.RFC3339,
}

// DateString 解析后端时间戳后按 Date 渲染，无法解析时原样返回。
func DateString(s string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t)
		}
	}
	return s
}

func dateAt(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return strconv.Itoa(days-1) + " days ago"
	default:
		return t.Format("2006-01-02")
	}
}

// FileType 文件类型归类结果。
type FileType string

const (
	TypePDF      FileType = "pdf"
	TypeImage    FileType = "image"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeDocument FileType = "document"
	TypeArchive  FileType = "archive"
	TypeCode     FileType = "code"
	TypeDefault  FileType = "default"
)

var extensionTypes = map[string]FileType{
	"pdf": TypePDF,

	"jpg": TypeImage, "jpeg": TypeImage, "png": TypeImage, "gif": TypeImage,
	"bmp": TypeImage, "svg": TypeImage, "webp": TypeImage,

	"mp4": TypeVideo, "avi": TypeVideo, "mov": TypeVideo, "wmv": TypeVideo,
	"flv": TypeVideo, "webm": TypeVideo, "mkv": TypeVideo,

	"mp3": TypeAudio, "wav": TypeAudio, "flac": TypeAudio, "aac": TypeAudio,
	"ogg": TypeAudio, "wma": TypeAudio,

	"doc": TypeDocument, "docx": TypeDocument, "txt": TypeDocument,
	"rtf": TypeDocument, "odt": TypeDocument,

	"zip": TypeArchive, "rar": TypeArchive, "7z": TypeArchive,
	"tar": TypeArchive, "gz": TypeArchive,

	"js": TypeCode, "html": TypeCode, "css": TypeCode, "php": TypeCode,
	"py": TypeCode, "java": TypeCode, "cpp": TypeCode, "c": TypeCode,
	"json": TypeCode, "xml": TypeCode,
}

// FileTypeOf 按扩展名归类文件，未知扩展名归入 default。
func FileTypeOf(filename string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeDefault
}

// ErrFileTypeNotAllowed 上传文件的 MIME 类型不在白名单内。
var ErrFileTypeNotAllowed = errors.New("File type not allowed")

// allowedMIMEPrefixes 上传 MIME 白名单（前缀匹配）。
var allowedMIMEPrefixes = []string{
	"image/", "video/", "audio/", "text/", "application/pdf",
	"application/msword", "application/vnd.openxmlformats-officedocument",
	"application/zip", "application/x-rar-compressed", "application/json",
}

// ValidateUpload 对上传做本地校验：大小上限与 MIME 白名单。
// 通过时返回 nil。
func ValidateUpload(size int64, mimeType string) error {
	if size > MaxUploadSize {
		return errors.New("File size must be less than " + FileSize(MaxUploadSize))
	}
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return nil
		}
	}
	return ErrFileTypeNotAllowed
}
